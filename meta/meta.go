// meta/meta.go
package meta

// SEARCH_DEPTH defines the deepest iterative deepening pass.
const SEARCH_DEPTH = 4

// DEPTH_STEP defines the depth increment between iterative deepening passes.
const DEPTH_STEP = 1

// GO_ROUTINES defines the number of games played concurrently.
const GO_ROUTINES = 8

// GAMES defines the number of games per match up.
const GAMES = 10

// MAX_TURNS defines the number of moves after which a game is abandoned.
const MAX_TURNS = 300

// SEED defines the default seed of random agents.
const SEED = 523
