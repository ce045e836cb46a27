package repository

import (
	"testing"

	"github.com/cinegraph/cinegraph/internal/domain"
)

func TestMoviesRepository_ListSortedByTitle(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()

	for _, title := range []string{"Zodiac", "Alien", "Memento"} {
		mustCreateMovie(t, env, title)
	}

	sortBy := "TITLE"
	direction := "ASC"
	page, err := env.repository.Movies.List(env.ctx, MovieListFilters{
		SortBy:        &sortBy,
		SortDirection: &direction,
		Limit:         10,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 3 {
		t.Fatalf("list size = %d, want 3", len(page.Items))
	}
	want := []string{"Alien", "Memento", "Zodiac"}
	for i, movie := range page.Items {
		if movie.Title != want[i] {
			t.Fatalf("position %d = %q, want %q", i, movie.Title, want[i])
		}
	}
	if page.HasNext {
		t.Fatalf("unexpected next page")
	}
}

func TestMoviesRepository_TitleFilterAndCount(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()

	mustCreateMovie(t, env, "The Godfather")
	mustCreateMovie(t, env, "The Godfather Part II")
	mustCreateMovie(t, env, "Alien")

	contains := "godfather"
	page, err := env.repository.Movies.List(env.ctx, MovieListFilters{TitleContains: &contains, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("filtered list size = %d, want 2", len(page.Items))
	}

	total, err := env.repository.Movies.Count(env.ctx, &contains)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 2 {
		t.Fatalf("count = %d, want 2", total)
	}
}

func TestMoviesRepository_NullScoreSortIsTotal(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()

	scored := mustCreateMovie(t, env, "Scored")
	mustCreateMovie(t, env, "Unscored A")
	mustCreateMovie(t, env, "Unscored B")

	critic := mustCreateUser(t, env, "critic", domain.UserTypeCritic)
	mustCreateReview(t, env, scored, critic, 8)

	sortBy := "CRITIC_SCORE"
	direction := "DESC"
	var seen []int64
	var cursor *Cursor
	for {
		page, err := env.repository.Movies.List(env.ctx, MovieListFilters{
			SortBy:        &sortBy,
			SortDirection: &direction,
			Limit:         1,
			Cursor:        cursor,
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		for _, movie := range page.Items {
			seen = append(seen, movie.ID)
		}
		if !page.HasNext {
			break
		}
		next, err := DecodeCursor(page.Cursors[len(page.Cursors)-1])
		if err != nil {
			t.Fatalf("decode cursor: %v", err)
		}
		cursor = next
	}

	if len(seen) != 3 {
		t.Fatalf("paged through %d movies, want 3", len(seen))
	}
	if seen[0] != scored.ID {
		t.Fatalf("scored movie should sort before unscored ones")
	}
}

func TestMoviesRepository_SetViewed(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()

	movie := mustCreateMovie(t, env, "Watched")
	userA := mustCreateUser(t, env, "a", domain.UserTypeRegular)
	userB := mustCreateUser(t, env, "b", domain.UserTypeRegular)

	got, err := env.repository.Movies.SetViewed(env.ctx, movie.ID, userA.ID, true)
	if err != nil {
		t.Fatalf("set viewed: %v", err)
	}
	if got.ViewedUserCount != 1 {
		t.Fatalf("viewed count = %d, want 1", got.ViewedUserCount)
	}

	// Marking twice is a no-op.
	got, err = env.repository.Movies.SetViewed(env.ctx, movie.ID, userA.ID, true)
	if err != nil {
		t.Fatalf("repeat set viewed: %v", err)
	}
	if got.ViewedUserCount != 1 {
		t.Fatalf("viewed count after repeat = %d, want 1", got.ViewedUserCount)
	}

	if _, err := env.repository.Movies.SetViewed(env.ctx, movie.ID, userB.ID, true); err != nil {
		t.Fatalf("second viewer: %v", err)
	}

	viewed, err := env.repository.Movies.IsViewedBy(env.ctx, movie.ID, userA.ID)
	if err != nil || !viewed {
		t.Fatalf("IsViewedBy = %v, %v; want true", viewed, err)
	}

	got, err = env.repository.Movies.SetViewed(env.ctx, movie.ID, userA.ID, false)
	if err != nil {
		t.Fatalf("unset viewed: %v", err)
	}
	if got.ViewedUserCount != 1 {
		t.Fatalf("viewed count after unset = %d, want 1", got.ViewedUserCount)
	}

	if _, err := env.repository.Movies.SetViewed(env.ctx, 999999, userA.ID, true); !domain.IsNotFound(err) {
		t.Fatalf("set viewed on missing movie = %v, want NotFound", err)
	}
}

func TestMoviesRepository_Credits(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()

	movie := mustCreateMovie(t, env, "Credited")

	if err := env.repository.Movies.AddGenre(env.ctx, movie.ID, "Drama"); err != nil {
		t.Fatalf("add genre: %v", err)
	}
	if err := env.repository.Movies.AddGenre(env.ctx, movie.ID, "Drama"); err != nil {
		t.Fatalf("re-add genre: %v", err)
	}
	if err := env.repository.Movies.AddCompany(env.ctx, movie.ID, "Meridian", false); err != nil {
		t.Fatalf("add producer: %v", err)
	}
	if err := env.repository.Movies.AddCompany(env.ctx, movie.ID, "Atlas", true); err != nil {
		t.Fatalf("add distributor: %v", err)
	}

	director, err := env.repository.Movies.AddCrewMember(env.ctx, "Jane Director", nil)
	if err != nil {
		t.Fatalf("add crew member: %v", err)
	}
	if err := env.repository.Movies.AddWorkCredit(env.ctx, director.ID, movie.ID, domain.CrewRoleDirector); err != nil {
		t.Fatalf("add work credit: %v", err)
	}
	actor, err := env.repository.Movies.AddCrewMember(env.ctx, "Sam Actor", nil)
	if err != nil {
		t.Fatalf("add actor: %v", err)
	}
	if err := env.repository.Movies.AddActingCredit(env.ctx, actor.ID, movie.ID, "The Stranger"); err != nil {
		t.Fatalf("add acting credit: %v", err)
	}

	genres, err := env.repository.Movies.Genres(env.ctx, movie.ID)
	if err != nil || len(genres) != 1 || genres[0].Name != "Drama" {
		t.Fatalf("genres = %v, %v; want [Drama]", genres, err)
	}
	producers, err := env.repository.Movies.ProductionCompanies(env.ctx, movie.ID)
	if err != nil || len(producers) != 1 || producers[0].Name != "Meridian" {
		t.Fatalf("producers = %v, %v; want [Meridian]", producers, err)
	}
	distributors, err := env.repository.Movies.DistributionCompanies(env.ctx, movie.ID)
	if err != nil || len(distributors) != 1 || distributors[0].Name != "Atlas" {
		t.Fatalf("distributors = %v, %v; want [Atlas]", distributors, err)
	}
	directors, err := env.repository.Movies.CrewByRole(env.ctx, movie.ID, domain.CrewRoleDirector)
	if err != nil || len(directors) != 1 || directors[0].Name != "Jane Director" {
		t.Fatalf("directors = %v, %v; want [Jane Director]", directors, err)
	}
	cast, err := env.repository.Movies.ActingCredits(env.ctx, movie.ID)
	if err != nil || len(cast) != 1 || cast[0].CharacterName != "The Stranger" {
		t.Fatalf("cast = %v, %v; want [The Stranger]", cast, err)
	}
	if cast[0].Crew.Name != "Sam Actor" {
		t.Fatalf("cast crew = %q, want Sam Actor", cast[0].Crew.Name)
	}
}
