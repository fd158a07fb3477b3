package review

// Code identifies a validation failure.
type Code string

const (
	CodeMissingReviewerName      Code = "missing_reviewer_name"
	CodeMissingHostelName        Code = "missing_hostel_name"
	CodeMissingHostelType        Code = "missing_hostel_type"
	CodeMissingMealType          Code = "missing_meal_type"
	CodeMissingOverallRating     Code = "missing_overall_rating"
	CodeOverallRatingOutOfRange  Code = "overall_rating_out_of_range"
	CodeTasteRatingOutOfRange    Code = "taste_rating_out_of_range"
	CodeHygieneRatingOutOfRange  Code = "hygiene_rating_out_of_range"
	CodeQuantityRatingOutOfRange Code = "quantity_rating_out_of_range"
)

// ValidationError is a local, recoverable problem with a draft. It carries
// the message shown to the user.
type ValidationError struct {
	Code    Code
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrMissingReviewerName = &ValidationError{
		Code: CodeMissingReviewerName, Field: "reviewer_name", Message: "Please enter your name",
	}
	ErrMissingHostelName = &ValidationError{
		Code: CodeMissingHostelName, Field: "hostel_name", Message: "Please enter hostel name",
	}
	ErrMissingHostelType = &ValidationError{
		Code: CodeMissingHostelType, Field: "hostel_type", Message: "Please select hostel type",
	}
	ErrMissingMealType = &ValidationError{
		Code: CodeMissingMealType, Field: "meal_type", Message: "Please select meal type",
	}
	ErrMissingOverallRating = &ValidationError{
		Code: CodeMissingOverallRating, Field: "overall_rating", Message: "Please give an overall rating",
	}
	ErrOverallRatingOutOfRange = &ValidationError{
		Code: CodeOverallRatingOutOfRange, Field: "overall_rating", Message: "Overall rating must be between 1 and 5",
	}
	ErrTasteRatingOutOfRange = &ValidationError{
		Code: CodeTasteRatingOutOfRange, Field: "taste_rating", Message: "Taste rating must be between 1 and 5",
	}
	ErrHygieneRatingOutOfRange = &ValidationError{
		Code: CodeHygieneRatingOutOfRange, Field: "hygiene_rating", Message: "Hygiene rating must be between 1 and 5",
	}
	ErrQuantityRatingOutOfRange = &ValidationError{
		Code: CodeQuantityRatingOutOfRange, Field: "quantity_rating", Message: "Quantity rating must be between 1 and 5",
	}
)

var byCode = map[Code]*ValidationError{}

func init() {
	for _, e := range []*ValidationError{
		ErrMissingReviewerName, ErrMissingHostelName, ErrMissingHostelType,
		ErrMissingMealType, ErrMissingOverallRating, ErrOverallRatingOutOfRange,
		ErrTasteRatingOutOfRange, ErrHygieneRatingOutOfRange, ErrQuantityRatingOutOfRange,
	} {
		byCode[e.Code] = e
	}
}

// Lookup returns the sentinel for code, if it names one.
func Lookup(code Code) (*ValidationError, bool) {
	e, ok := byCode[code]
	return e, ok
}
