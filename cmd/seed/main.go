package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/cinegraph/cinegraph/internal/auth"
	"github.com/cinegraph/cinegraph/internal/config"
	"github.com/cinegraph/cinegraph/internal/domain"
	"github.com/cinegraph/cinegraph/internal/repository"
	"github.com/cinegraph/cinegraph/internal/store"
)

// Development seeder: creates a couple of accounts, a few movies with
// credits, and sample reviews so a fresh database has something to browse.
func main() {
	logger := log.New(os.Stdout, "[cinegraph-seed] ", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	st, err := store.New(ctx, cfg.DBURL, store.Options{Logger: logger})
	if err != nil {
		logger.Fatalf("connect database: %v", err)
	}
	defer st.Close()

	repo := repository.New(st)
	if err := seed(ctx, repo, cfg.BcryptCost); err != nil {
		logger.Fatalf("seed: %v", err)
	}
	logger.Println("seed complete")
}

func seed(ctx context.Context, repo *repository.Repository, bcryptCost int) error {
	hash, err := auth.HashPassword("password123", bcryptCost)
	if err != nil {
		return err
	}

	critic, err := repo.Users.Create(ctx, repository.UserCreateParams{
		Username:       "pauline",
		Email:          "pauline@example.com",
		HashedPassword: hash,
		Name:           "Pauline Kael",
		UserType:       domain.UserTypeCritic,
		DateOfBirth:    time.Date(1975, 6, 19, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		return err
	}
	member, err := repo.Users.Create(ctx, repository.UserCreateParams{
		Username:       "john",
		Email:          "john@example.com",
		HashedPassword: hash,
		Name:           "John Doe",
		UserType:       domain.UserTypeRegular,
		DateOfBirth:    time.Date(1990, 1, 12, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		return err
	}

	movies := []struct {
		title    string
		released time.Time
		minutes  int32
		genres   []string
		director string
	}{
		{"Heat of the Night", time.Date(1995, 12, 15, 0, 0, 0, 0, time.UTC), 170, []string{"Crime", "Drama"}, "Michael Mann"},
		{"Paper Cranes", time.Date(2008, 3, 2, 0, 0, 0, 0, time.UTC), 104, []string{"Drama"}, "Ann Lee"},
		{"Night Shift", time.Date(2019, 10, 25, 0, 0, 0, 0, time.UTC), 96, []string{"Thriller"}, "Sam Ortiz"},
	}

	for i, m := range movies {
		movie, err := repo.Movies.Create(ctx, repository.MovieCreateParams{
			Title:       m.title,
			ReleaseDate: m.released,
			RunningTime: m.minutes,
		})
		if err != nil {
			return err
		}
		for _, g := range m.genres {
			if err := repo.Movies.AddGenre(ctx, movie.ID, g); err != nil {
				return err
			}
		}
		director, err := repo.Movies.AddCrewMember(ctx, m.director, nil)
		if err != nil {
			return err
		}
		if err := repo.Movies.AddWorkCredit(ctx, director.ID, movie.ID, domain.CrewRoleDirector); err != nil {
			return err
		}
		if err := repo.Movies.AddCompany(ctx, movie.ID, "Meridian Pictures", false); err != nil {
			return err
		}

		if _, err := repo.Reviews.Create(ctx, repository.ReviewCreateParams{
			MovieID:    movie.ID,
			AuthorID:   critic.ID,
			AuthorType: critic.UserType,
			Title:      "Worth your evening",
			Content:    "A confident piece of filmmaking.",
			Score:      int32(6 + i),
		}); err != nil {
			return err
		}
		if _, err := repo.Reviews.Create(ctx, repository.ReviewCreateParams{
			MovieID:    movie.ID,
			AuthorID:   member.ID,
			AuthorType: member.UserType,
			Title:      "Loved it",
			Content:    "Saw it twice in one week.",
			Score:      int32(7 + i),
		}); err != nil {
			return err
		}
	}

	collection, err := repo.Collections.Create(ctx, member.ID, "Rainy day picks")
	if err != nil {
		return err
	}
	page, err := repo.Movies.List(ctx, repository.MovieListFilters{Limit: 2})
	if err != nil {
		return err
	}
	ids := make([]int64, len(page.Items))
	for i, movie := range page.Items {
		ids[i] = movie.ID
	}
	_, err = repo.Collections.AddMovies(ctx, collection.ID, member.ID, ids)
	return err
}
