package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TeamRepo       TeamRepositoryFacade
	DealRepo       DealRepositoryFacade
	CardRepo       CardRepositoryFacade
	TableLogRepo   TableLogRepositoryFacade
	GameConfigRepo GameConfigRepositoryFacade
	TableRepo      TableRepositoryFacade
}
