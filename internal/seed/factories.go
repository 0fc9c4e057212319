package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"admindesk/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

// Factory builds randomized domain entities for demo data beyond the fixed
// fixtures.
type Factory struct {
	rand *rand.Rand
}

// NewFactory returns a Factory with its own randomness source.
func NewFactory() *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

var categories = []models.Category{
	models.CategoryPortfolio,
	models.CategoryTech,
	models.CategoryOther,
}

// BuildMember constructs a random member account without a password digest.
func (f *Factory) BuildMember() models.User {
	created := f.pastTime(180)
	return models.User{
		Name:      gofakeit.Name(),
		Email:     strings.ToLower(gofakeit.Email()),
		Role:      models.RoleUser,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

// BuildPost constructs a random blog post.
func (f *Factory) BuildPost(authorID string) models.BlogPost {
	created := f.pastTime(90)
	content := fmt.Sprintf("<p>%s</p><p>%s</p>",
		gofakeit.Paragraph(1, 3, 12, " "),
		gofakeit.Paragraph(1, 2, 10, " "))

	tags := make([]string, f.rand.Intn(4)+1)
	for i := range tags {
		tags[i] = gofakeit.HackerNoun()
	}

	return models.BlogPost{
		Title:     gofakeit.Sentence(5),
		Content:   content,
		Excerpt:   gofakeit.Sentence(10),
		Category:  categories[f.rand.Intn(len(categories))],
		Tags:      tags,
		AuthorID:  authorID,
		Published: f.rand.Intn(10) > 2,
		Views:     int64(f.rand.Intn(500)),
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func (f *Factory) pastTime(maxDays int) time.Time {
	daysBack := f.rand.Intn(maxDays)
	hoursBack := f.rand.Intn(24)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)
}
