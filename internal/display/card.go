// Package display projects a stored review onto the summary shown in lists.
package display

import (
	"fmt"
	"io"
	"strings"

	"hostel-food-backend/internal/model"
	"hostel-food-backend/internal/rating"
)

// DateLayout formats created_at as e.g. "Mar 4, 2026".
const DateLayout = "Jan 2, 2006"

// SubRating is one labelled "n/5" cell.
type SubRating struct {
	Label string
	Value string
}

// Card is everything a list entry shows. Optional parts are empty strings
// when the review does not carry them.
type Card struct {
	HostelName  string
	City        string
	HostelType  string
	Stars       string
	Recommended bool
	Dish        string
	MealType    string
	SubRatings  [3]SubRating
	Quote       string
	Reviewer    string
	Date        string
}

// Project maps r to its card.
func Project(r model.Review) Card {
	c := Card{
		HostelName:  r.HostelName,
		HostelType:  string(r.HostelType),
		Stars:       rating.ReadOnlyStars(r.OverallRating).Render(),
		Recommended: r.IsRecommended,
		SubRatings: [3]SubRating{
			{Label: "Taste", Value: outOf(r.TasteRating)},
			{Label: "Hygiene", Value: outOf(r.HygieneRating)},
			{Label: "Quantity", Value: outOf(r.QuantityRating)},
		},
		Reviewer: r.ReviewerName,
		Date:     r.CreatedAt.Format(DateLayout),
	}
	if r.City != nil {
		c.City = *r.City
	}
	if r.DishName != nil {
		c.Dish = *r.DishName
		c.MealType = string(r.MealType)
	}
	if r.ReviewText != nil {
		c.Quote = *r.ReviewText
	}
	return c
}

func outOf(v int) string {
	return fmt.Sprintf("%d/%d", v, rating.DefaultMax)
}

// Render writes the card as plain text.
func (c Card) Render(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", c.HostelName, c.Stars)

	meta := make([]string, 0, 3)
	if c.City != "" {
		meta = append(meta, c.City)
	}
	meta = append(meta, "["+c.HostelType+"]")
	if c.Recommended {
		meta = append(meta, "[Recommended]")
	}
	fmt.Fprintf(&b, "  %s\n", strings.Join(meta, " "))

	if c.Dish != "" {
		fmt.Fprintf(&b, "  %s [%s]\n", c.Dish, c.MealType)
	}

	cells := make([]string, len(c.SubRatings))
	for i, s := range c.SubRatings {
		cells[i] = s.Label + " " + s.Value
	}
	fmt.Fprintf(&b, "  %s\n", strings.Join(cells, " | "))

	if c.Quote != "" {
		fmt.Fprintf(&b, "  \"%s\"\n", c.Quote)
	}
	fmt.Fprintf(&b, "  - %s, %s\n", c.Reviewer, c.Date)

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderAll writes every card separated by a blank line.
func RenderAll(w io.Writer, reviews []model.Review) error {
	for i, r := range reviews {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := Project(r).Render(w); err != nil {
			return err
		}
	}
	return nil
}
