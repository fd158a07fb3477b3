package review

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"hostel-food-backend/internal/model"
)

func validDraft() Draft {
	d := NewDraft()
	d.ReviewerName = "Alex"
	d.HostelName = "Oak Hall"
	d.HostelType = model.HostelBoys
	d.MealType = model.MealLunch
	d.OverallRating = 4
	return d
}

func TestNewDraft_Defaults(t *testing.T) {
	d := NewDraft()
	assert.Equal(t, 0, d.OverallRating)
	assert.Equal(t, 3, d.TasteRating)
	assert.Equal(t, 3, d.HygieneRating)
	assert.Equal(t, 3, d.QuantityRating)
	assert.False(t, d.IsRecommended)
}

func TestValidate_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		mutate   func(d *Draft)
		expected *ValidationError
	}{
		{name: "Missing reviewer", mutate: func(d *Draft) { d.ReviewerName = "" }, expected: ErrMissingReviewerName},
		{name: "Blank reviewer", mutate: func(d *Draft) { d.ReviewerName = "   \t" }, expected: ErrMissingReviewerName},
		{name: "Missing hostel", mutate: func(d *Draft) { d.HostelName = " " }, expected: ErrMissingHostelName},
		{name: "Missing hostel type", mutate: func(d *Draft) { d.HostelType = "" }, expected: ErrMissingHostelType},
		{name: "Unknown hostel type", mutate: func(d *Draft) { d.HostelType = "Mixed" }, expected: ErrMissingHostelType},
		{name: "Missing meal type", mutate: func(d *Draft) { d.MealType = "" }, expected: ErrMissingMealType},
		{name: "Unset overall", mutate: func(d *Draft) { d.OverallRating = 0 }, expected: ErrMissingOverallRating},
		{name: "Overall too high", mutate: func(d *Draft) { d.OverallRating = 6 }, expected: ErrOverallRatingOutOfRange},
		{name: "Overall negative", mutate: func(d *Draft) { d.OverallRating = -1 }, expected: ErrOverallRatingOutOfRange},
		{name: "Taste zero", mutate: func(d *Draft) { d.TasteRating = 0 }, expected: ErrTasteRatingOutOfRange},
		{name: "Hygiene too high", mutate: func(d *Draft) { d.HygieneRating = 9 }, expected: ErrHygieneRatingOutOfRange},
		{name: "Quantity zero", mutate: func(d *Draft) { d.QuantityRating = 0 }, expected: ErrQuantityRatingOutOfRange},
		{
			name: "Reviewer reported before everything else",
			mutate: func(d *Draft) {
				*d = NewDraft()
			},
			expected: ErrMissingReviewerName,
		},
		{
			name: "Hostel type reported before overall rating",
			mutate: func(d *Draft) {
				d.HostelType = ""
				d.OverallRating = 0
			},
			expected: ErrMissingHostelType,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := validDraft()
			tc.mutate(&d)
			_, err := Validate(d)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.expected), "got %v", err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.expected.Code, verr.Code)
		})
	}
}

func TestValidate_CompleteReview(t *testing.T) {
	rec, err := Validate(validDraft())
	require.NoError(t, err)

	assert.Equal(t, "Alex", rec.ReviewerName)
	assert.Equal(t, "Oak Hall", rec.HostelName)
	assert.Equal(t, model.HostelBoys, rec.HostelType)
	assert.Equal(t, model.MealLunch, rec.MealType)
	assert.Equal(t, 4, rec.OverallRating)
	assert.Equal(t, 3, rec.TasteRating)
	assert.Equal(t, 3, rec.HygieneRating)
	assert.Equal(t, 3, rec.QuantityRating)
	assert.False(t, rec.IsRecommended)
	assert.Nil(t, rec.City)
	assert.Nil(t, rec.DishName)
	assert.Nil(t, rec.ReviewText)
	assert.Empty(t, rec.ID)
	assert.True(t, rec.CreatedAt.IsZero())
}

func TestValidate_Normalizes(t *testing.T) {
	d := validDraft()
	d.ReviewerName = "  Alex  "
	d.HostelName = "\tOak Hall "
	d.City = "  Pune "
	d.DishName = "   "
	d.ReviewText = "  tasty dal  "

	rec, err := Validate(d)
	require.NoError(t, err)
	assert.Equal(t, "Alex", rec.ReviewerName)
	assert.Equal(t, "Oak Hall", rec.HostelName)
	require.NotNil(t, rec.City)
	assert.Equal(t, "Pune", *rec.City)
	assert.Nil(t, rec.DishName)
	require.NotNil(t, rec.ReviewText)
	assert.Equal(t, "tasty dal", *rec.ReviewText)
}

func TestSetReviewText_TruncatesLongInput(t *testing.T) {
	input := strings.Repeat("abcdef", 100)
	require.Equal(t, 600, len(input))

	d := validDraft()
	d.SetReviewText(input)
	assert.Equal(t, 500, len(d.ReviewText))
	assert.True(t, strings.HasPrefix(input, d.ReviewText))
	assert.Equal(t, "(500/500 characters)", d.TextCounter())

	rec, err := Validate(d)
	require.NoError(t, err)
	require.NotNil(t, rec.ReviewText)
	assert.Equal(t, d.ReviewText, *rec.ReviewText)
}

func TestTruncateText_Runes(t *testing.T) {
	input := strings.Repeat("स", 520)
	out := TruncateText(input)
	assert.Equal(t, 500, utf8.RuneCountInString(out))
	assert.True(t, utf8.ValidString(out))
}

func TestLookup(t *testing.T) {
	e, ok := Lookup(CodeMissingOverallRating)
	require.True(t, ok)
	assert.Same(t, ErrMissingOverallRating, e)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}

func drawDraft(rt *rapid.T) Draft {
	text := rapid.StringMatching(`[ a-zA-Z]{0,12}`)
	hostelTypes := append([]model.HostelType{""}, model.HostelTypes...)
	mealTypes := append([]model.MealType{""}, model.MealTypes...)
	return Draft{
		ReviewerName:   text.Draw(rt, "reviewer"),
		HostelName:     text.Draw(rt, "hostel"),
		HostelType:     rapid.SampledFrom(hostelTypes).Draw(rt, "hostelType"),
		City:           text.Draw(rt, "city"),
		MealType:       rapid.SampledFrom(mealTypes).Draw(rt, "mealType"),
		DishName:       text.Draw(rt, "dish"),
		OverallRating:  rapid.IntRange(0, 5).Draw(rt, "overall"),
		TasteRating:    rapid.IntRange(1, 5).Draw(rt, "taste"),
		HygieneRating:  rapid.IntRange(1, 5).Draw(rt, "hygiene"),
		QuantityRating: rapid.IntRange(1, 5).Draw(rt, "quantity"),
		ReviewText:     rapid.StringN(0, 700, -1).Draw(rt, "text"),
		IsRecommended:  rapid.Bool().Draw(rt, "recommended"),
	}
}

func TestProperty_ValidationMatchesFirstMissingField(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d := drawDraft(rt)
		_, err := Validate(d)

		var want error
		switch {
		case strings.TrimSpace(d.ReviewerName) == "":
			want = ErrMissingReviewerName
		case strings.TrimSpace(d.HostelName) == "":
			want = ErrMissingHostelName
		case d.HostelType == "":
			want = ErrMissingHostelType
		case d.MealType == "":
			want = ErrMissingMealType
		case d.OverallRating == 0:
			want = ErrMissingOverallRating
		}
		if want == nil {
			if err != nil {
				rt.Fatalf("expected success, got %v", err)
			}
			return
		}
		if !errors.Is(err, want) {
			rt.Fatalf("expected %v, got %v", want, err)
		}
	})
}

func TestProperty_NormalizedOptionalText(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d := drawDraft(rt)
		rec, err := Validate(d)
		if err != nil {
			rt.Skip("draft is invalid")
		}
		for name, v := range map[string]*string{"city": rec.City, "dish": rec.DishName, "text": rec.ReviewText} {
			if v == nil {
				continue
			}
			if *v == "" || strings.TrimSpace(*v) != *v {
				rt.Fatalf("%s not normalized: %q", name, *v)
			}
		}
		if rec.ReviewText != nil && utf8.RuneCountInString(*rec.ReviewText) > MaxTextLength {
			rt.Fatalf("review text longer than %d", MaxTextLength)
		}
	})
}
