package entities

// Rank is an ordered account rank. Higher ranks unlock deeper tower levels
// and raise the equipment boost ceiling.
type Rank string

// Ranks in ascending order
const (
	RankNovice      Rank = "Novice"
	RankApprentice  Rank = "Apprentice"
	RankJourneyman  Rank = "Journeyman"
	RankExpert      Rank = "Expert"
	RankMaster      Rank = "Master"
	RankGrandmaster Rank = "Grandmaster"
	RankLegend      Rank = "Legend"
	RankElite       Rank = "Elite"
)

// Ranks lists every rank in ascending order
var Ranks = []Rank{
	RankNovice,
	RankApprentice,
	RankJourneyman,
	RankExpert,
	RankMaster,
	RankGrandmaster,
	RankLegend,
	RankElite,
}

// Index returns the position of r in Ranks. Unknown ranks sort as Novice.
func (r Rank) Index() int {
	for i, known := range Ranks {
		if r == known {
			return i
		}
	}
	return 0
}

// Valid reports whether r is a known rank
func (r Rank) Valid() bool {
	for _, known := range Ranks {
		if r == known {
			return true
		}
	}
	return false
}

// AtLeast reports whether r is the same as or above other
func (r Rank) AtLeast(other Rank) bool {
	return r.Index() >= other.Index()
}

// Role is an account's permission role
type Role string

// Roles
const (
	RolePlayer Role = "player"
	RoleAdmin  Role = "admin"
)
