package dto

type AddCompareRequest struct {
	Type string `json:"type" validate:"required,oneof=district school teacher student"`
	ID   string `json:"id" validate:"required,max=64"`
	Name string `json:"name" validate:"max=200"`
}

type SetDrawerRequest struct {
	Open bool `json:"open"`
}
