package entities

// Stats is an actor's base stat vector
type Stats struct {
	Str  Num `json:"str"`
	Def  Num `json:"def"`
	Spd  Num `json:"spd"`
	Int  Num `json:"int"`
	Luck Num `json:"luck"`
	Pot  Num `json:"pot"`
}

// Stat names one entry of Stats
type Stat string

// Stat names
const (
	StatStr  Stat = "str"
	StatDef  Stat = "def"
	StatSpd  Stat = "spd"
	StatInt  Stat = "int"
	StatLuck Stat = "luck"
	StatPot  Stat = "pot"
)

// AllStats lists the base stats in display order
var AllStats = []Stat{StatStr, StatDef, StatSpd, StatInt, StatLuck, StatPot}

// Get returns the named stat
func (s Stats) Get(stat Stat) (Num, bool) {
	switch stat {
	case StatStr:
		return s.Str, true
	case StatDef:
		return s.Def, true
	case StatSpd:
		return s.Spd, true
	case StatInt:
		return s.Int, true
	case StatLuck:
		return s.Luck, true
	case StatPot:
		return s.Pot, true
	}
	return 0, false
}

// Set replaces the named stat, reporting false for an unknown name
func (s *Stats) Set(stat Stat, v Num) bool {
	switch stat {
	case StatStr:
		s.Str = v
	case StatDef:
		s.Def = v
	case StatSpd:
		s.Spd = v
	case StatInt:
		s.Int = v
	case StatLuck:
		s.Luck = v
	case StatPot:
		s.Pot = v
	default:
		return false
	}
	return true
}
