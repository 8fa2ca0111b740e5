package main

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// FeaturedBooks is the curated selection loaded into an empty catalog at
// startup so the storefront has something to display on the home page.
var FeaturedBooks = []Book{
	{
		Title:         "The Midnight Library",
		Author:        "Matt Haig",
		Genre:         "Fiction",
		Price:         decimal.RequireFromString("13.99"),
		Image:         "/images/the-midnight-library.jpg",
		Description:   "Between life and death there is a library, and within that library, the shelves go on forever.",
		ISBN:          "978-0525559474",
		Pages:         304,
		Publisher:     "Viking",
		PublishedDate: "2020-09-29",
		Rating:        decimal.RequireFromString("4.2"),
	},
	{
		Title:         "Atomic Habits",
		Author:        "James Clear",
		Genre:         "Self-Help",
		Price:         decimal.RequireFromString("16.20"),
		Image:         "/images/atomic-habits.jpg",
		Description:   "An easy and proven way to build good habits and break bad ones.",
		ISBN:          "978-0735211292",
		Pages:         320,
		Publisher:     "Avery",
		PublishedDate: "2018-10-16",
		Rating:        decimal.RequireFromString("4.8"),
	},
	{
		Title:         "Project Hail Mary",
		Author:        "Andy Weir",
		Genre:         "Science Fiction",
		Price:         decimal.RequireFromString("14.49"),
		Image:         "/images/project-hail-mary.jpg",
		Description:   "A lone astronaut must save the earth from disaster in this cinematic thriller.",
		ISBN:          "978-0593135204",
		Pages:         496,
		Publisher:     "Ballantine Books",
		PublishedDate: "2021-05-04",
		Rating:        decimal.RequireFromString("4.7"),
	},
	{
		Title:         "The Seven Husbands of Evelyn Hugo",
		Author:        "Taylor Jenkins Reid",
		Genre:         "Romance",
		Price:         decimal.RequireFromString("9.99"),
		Image:         "/images/evelyn-hugo.jpg",
		Description:   "Aging Hollywood icon Evelyn Hugo finally decides to tell the truth about her glamorous and scandalous life.",
		ISBN:          "978-1501161933",
		Pages:         400,
		Publisher:     "Washington Square Press",
		PublishedDate: "2017-06-13",
		Rating:        decimal.RequireFromString("4.6"),
	},
	{
		Title:         "Educated",
		Author:        "Tara Westover",
		Genre:         "Memoir",
		Price:         decimal.RequireFromString("12.75"),
		Image:         "/images/educated.jpg",
		Description:   "A memoir about a young girl who, kept out of school, leaves her survivalist family and goes on to earn a PhD.",
		ISBN:          "978-0399590504",
		Pages:         334,
		Publisher:     "Random House",
		PublishedDate: "2018-02-20",
		Rating:        decimal.RequireFromString("4.5"),
	},
	{
		Title:         "The Silent Patient",
		Author:        "Alex Michaelides",
		Genre:         "Thriller",
		Price:         decimal.RequireFromString("11.30"),
		Image:         "/images/the-silent-patient.jpg",
		Description:   "A woman shoots her husband five times and then never speaks another word.",
		ISBN:          "978-1250301697",
		Pages:         336,
		Publisher:     "Celadon Books",
		PublishedDate: "2019-02-05",
		Rating:        decimal.RequireFromString("4.1"),
	},
}

// SeedCatalog fills an empty catalog with the featured books. A catalog
// already holding records is left untouched so manual curation survives
// restarts.
func SeedCatalog(ctx context.Context, logger *zap.Logger, storage BookStorage) error {
	total, err := storage.Count(ctx)
	if err != nil {
		return err
	}
	if total > 0 {
		logger.Info("catalog already populated, skipping seed", zap.Int("catalog.books", total))
		return nil
	}
	for _, book := range FeaturedBooks {
		if _, err := storage.Add(ctx, book); err != nil {
			return err
		}
	}
	logger.Info("catalog seeded with featured books", zap.Int("catalog.books", len(FeaturedBooks)))
	return nil
}
