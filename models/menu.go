package models

type MenuItem struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Price       int    `json:"price"` // whole rupees
}

// PreparationType is the style a dish is cooked in. It is part of a cart line's identity.
type PreparationType string

const (
	PreparationDum      PreparationType = "Dum"
	PreparationFryPiece PreparationType = "Fry Piece"
	PreparationLolipop  PreparationType = "Lolipop"
	PreparationRambo    PreparationType = "Rambo"
	PreparationWings    PreparationType = "Wings"
	PreparationTandoori PreparationType = "Tandoori"
	PreparationMixed    PreparationType = "Mixed"
	PreparationArabian  PreparationType = "Arabian"
)

var preparationTypes = []PreparationType{
	PreparationDum,
	PreparationFryPiece,
	PreparationLolipop,
	PreparationRambo,
	PreparationWings,
	PreparationTandoori,
	PreparationMixed,
	PreparationArabian,
}

// PreparationTypes returns the closed set of styles in display order.
func PreparationTypes() []PreparationType {
	out := make([]PreparationType, len(preparationTypes))
	copy(out, preparationTypes)
	return out
}

func (p PreparationType) Valid() bool {
	for _, t := range preparationTypes {
		if t == p {
			return true
		}
	}
	return false
}
