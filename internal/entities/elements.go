package entities

// Element is an elemental affinity
type Element string

// Elements is the fixed 18-element catalogue. Its order feeds the seeded
// immunity selection and must not change.
var Elements = []Element{
	"fire", "water", "earth", "air",
	"ice", "lightning", "nature", "poison",
	"light", "dark", "metal", "psychic",
	"sound", "crystal", "shadow", "void",
	"time", "chaos",
}

// Valid reports whether e is in the catalogue
func (e Element) Valid() bool {
	for _, known := range Elements {
		if e == known {
			return true
		}
	}
	return false
}
