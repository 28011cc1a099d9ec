package model

// ComparisonCategory is one axis of the comparison, e.g. "Battery Life".
type ComparisonCategory struct {
	CategoryTitle       string `json:"category_title" validate:"required,notblank"`
	CategoryDescription string `json:"category_description" validate:"required,notblank"`
	Product1Text        string `json:"product1_text" validate:"required,notblank"`
	Product2Text        string `json:"product2_text" validate:"required,notblank"`
}

// ComparisonResult is the terminal artifact of a comparison request.
type ComparisonResult struct {
	Comparisons  []ComparisonCategory `json:"comparisons" validate:"required,min=2,max=5,dive"`
	FinalVerdict string               `json:"final_verdict" validate:"required,notblank"`
}
