package repository

import (
	"testing"

	"github.com/cinegraph/cinegraph/internal/domain"
)

func assertAggregate(t testing.TB, env *testEnv, movieID int64, wantScore *float64, wantCount int32) {
	t.Helper()
	movie, err := env.repository.Movies.GetByID(env.ctx, movieID)
	if err != nil {
		t.Fatalf("get movie: %v", err)
	}
	if wantScore == nil {
		if movie.CriticScore != nil {
			t.Fatalf("critic score = %v, want null", *movie.CriticScore)
		}
	} else {
		if movie.CriticScore == nil {
			t.Fatalf("critic score = null, want %v", *wantScore)
		}
		if diff := *movie.CriticScore - *wantScore; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("critic score = %v, want %v", *movie.CriticScore, *wantScore)
		}
	}
	if movie.CriticReviewCount != wantCount {
		t.Fatalf("critic review count = %d, want %d", movie.CriticReviewCount, wantCount)
	}
}

func f(v float64) *float64 { return &v }

// Walks a movie's critic aggregate through create, create, edit, and delete.
func TestReviewsRepository_AggregateLifecycle(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()

	movie := mustCreateMovie(t, env, "Movie X")
	criticA := mustCreateUser(t, env, "critic-a", domain.UserTypeCritic)
	criticB := mustCreateUser(t, env, "critic-b", domain.UserTypeCritic)

	assertAggregate(t, env, movie.ID, nil, 0)

	mustCreateReview(t, env, movie, criticA, 6)
	assertAggregate(t, env, movie.ID, f(6), 1)

	reviewB := mustCreateReview(t, env, movie, criticB, 8)
	assertAggregate(t, env, movie.ID, f(7), 2)

	reviewA, err := env.repository.Reviews.ListByAuthor(env.ctx, criticA.ID, 10, nil)
	if err != nil || len(reviewA.Items) != 1 {
		t.Fatalf("list critic-a reviews: %v (%d items)", err, len(reviewA.Items))
	}
	score := int32(10)
	edited, err := env.repository.Reviews.Edit(env.ctx, reviewA.Items[0].ID, criticA.ID, ReviewEditParams{Score: &score})
	if err != nil {
		t.Fatalf("edit review: %v", err)
	}
	if edited.Score != 10 {
		t.Fatalf("edited score = %d, want 10", edited.Score)
	}
	if edited.LastUpdateTime == nil {
		t.Fatalf("expected lastUpdateTime set after edit")
	}
	assertAggregate(t, env, movie.ID, f(9), 2)

	if _, err := env.repository.Reviews.Delete(env.ctx, reviewB.ID, criticB.ID); err != nil {
		t.Fatalf("delete review: %v", err)
	}
	assertAggregate(t, env, movie.ID, f(10), 1)

	if _, err := env.repository.Reviews.Delete(env.ctx, reviewA.Items[0].ID, criticA.ID); err != nil {
		t.Fatalf("delete last review: %v", err)
	}
	assertAggregate(t, env, movie.ID, nil, 0)
}

func TestReviewsRepository_PartitionsByAuthorType(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()

	movie := mustCreateMovie(t, env, "Partitioned")
	critic := mustCreateUser(t, env, "critic", domain.UserTypeCritic)
	member := mustCreateUser(t, env, "member", domain.UserTypeRegular)

	mustCreateReview(t, env, movie, critic, 4)
	mustCreateReview(t, env, movie, member, 9)

	got, err := env.repository.Movies.GetByID(env.ctx, movie.ID)
	if err != nil {
		t.Fatalf("get movie: %v", err)
	}
	if got.CriticScore == nil || *got.CriticScore != 4 || got.CriticReviewCount != 1 {
		t.Fatalf("critic aggregate = %v/%d, want 4/1", got.CriticScore, got.CriticReviewCount)
	}
	if got.RegularScore == nil || *got.RegularScore != 9 || got.RegularReviewCount != 1 {
		t.Fatalf("regular aggregate = %v/%d, want 9/1", got.RegularScore, got.RegularReviewCount)
	}
}

func TestReviewsRepository_DuplicateReviewRejected(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()

	movie := mustCreateMovie(t, env, "Once Only")
	critic := mustCreateUser(t, env, "critic", domain.UserTypeCritic)

	mustCreateReview(t, env, movie, critic, 5)

	_, err := env.repository.Reviews.Create(env.ctx, ReviewCreateParams{
		MovieID:    movie.ID,
		AuthorID:   critic.ID,
		AuthorType: critic.UserType,
		Title:      "again",
		Content:    "again",
		Score:      9,
	})
	if domain.ErrorKindOf(err) != domain.KindAlreadyExists {
		t.Fatalf("duplicate review error = %v, want AlreadyExists", err)
	}

	// The failed insert must not disturb the aggregate.
	assertAggregate(t, env, movie.ID, f(5), 1)
}

func TestReviewsRepository_CreateForMissingMovie(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()

	critic := mustCreateUser(t, env, "critic", domain.UserTypeCritic)

	_, err := env.repository.Reviews.Create(env.ctx, ReviewCreateParams{
		MovieID:    999999,
		AuthorID:   critic.ID,
		AuthorType: critic.UserType,
		Title:      "ghost",
		Content:    "ghost",
		Score:      5,
	})
	if !domain.IsNotFound(err) {
		t.Fatalf("review for missing movie error = %v, want NotFound", err)
	}
}

func TestReviewsRepository_OwnershipReportsNotFound(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()

	movie := mustCreateMovie(t, env, "Guarded")
	owner := mustCreateUser(t, env, "owner", domain.UserTypeRegular)
	other := mustCreateUser(t, env, "other", domain.UserTypeRegular)

	review := mustCreateReview(t, env, movie, owner, 7)

	title := "hijack"
	if _, err := env.repository.Reviews.Edit(env.ctx, review.ID, other.ID, ReviewEditParams{Title: &title}); !domain.IsNotFound(err) {
		t.Fatalf("edit by non-owner error = %v, want NotFound", err)
	}
	if _, err := env.repository.Reviews.Delete(env.ctx, review.ID, other.ID); !domain.IsNotFound(err) {
		t.Fatalf("delete by non-owner error = %v, want NotFound", err)
	}

	// The review and aggregate are untouched.
	got, err := env.repository.Reviews.GetByID(env.ctx, review.ID)
	if err != nil {
		t.Fatalf("get review: %v", err)
	}
	if got.Title != review.Title {
		t.Fatalf("review title changed by non-owner")
	}
}

func TestReviewsRepository_Thanks(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()

	movie := mustCreateMovie(t, env, "Thanked")
	author := mustCreateUser(t, env, "author", domain.UserTypeRegular)
	fanA := mustCreateUser(t, env, "fan-a", domain.UserTypeRegular)
	fanB := mustCreateUser(t, env, "fan-b", domain.UserTypeRegular)

	review := mustCreateReview(t, env, movie, author, 8)

	for _, fan := range []domain.User{fanA, fanB} {
		if _, err := env.repository.Reviews.SetThanked(env.ctx, review.ID, fan.ID, true); err != nil {
			t.Fatalf("thank: %v", err)
		}
	}
	// Repeating the same state is a no-op.
	updated, err := env.repository.Reviews.SetThanked(env.ctx, review.ID, fanA.ID, true)
	if err != nil {
		t.Fatalf("repeat thank: %v", err)
	}
	if updated.ThankCount != 2 {
		t.Fatalf("thank count = %d, want 2", updated.ThankCount)
	}

	thanked, err := env.repository.Reviews.IsThankedBy(env.ctx, review.ID, fanA.ID)
	if err != nil || !thanked {
		t.Fatalf("IsThankedBy = %v, %v; want true", thanked, err)
	}

	users, err := env.repository.Reviews.ThankUsers(env.ctx, review.ID, 10, nil)
	if err != nil {
		t.Fatalf("thank users: %v", err)
	}
	if len(users.Items) != 2 {
		t.Fatalf("thank users = %d, want 2", len(users.Items))
	}

	updated, err = env.repository.Reviews.SetThanked(env.ctx, review.ID, fanB.ID, false)
	if err != nil {
		t.Fatalf("unthank: %v", err)
	}
	if updated.ThankCount != 1 {
		t.Fatalf("thank count after unthank = %d, want 1", updated.ThankCount)
	}

	if _, err := env.repository.Reviews.SetThanked(env.ctx, 999999, fanA.ID, true); !domain.IsNotFound(err) {
		t.Fatalf("thank missing review error = %v, want NotFound", err)
	}
}

func TestReviewsRepository_SortAndPagination(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()

	movie := mustCreateMovie(t, env, "Sorted")
	users := make([]domain.User, 5)
	// Duplicate scores exercise the id tiebreak.
	scores := []int32{7, 7, 3, 9, 7}
	for i, score := range scores {
		users[i] = mustCreateUser(t, env, "user-"+string(rune('a'+i)), domain.UserTypeRegular)
		mustCreateReview(t, env, movie, users[i], score)
	}

	sortBy := "SCORE"
	direction := "DESC"
	var seen []int64
	var cursor *Cursor
	for {
		page, err := env.repository.Reviews.ListForMovie(env.ctx, movie.ID, ReviewListFilters{
			SortBy:        &sortBy,
			SortDirection: &direction,
			Limit:         2,
			Cursor:        cursor,
		})
		if err != nil {
			t.Fatalf("list page: %v", err)
		}
		for _, review := range page.Items {
			seen = append(seen, review.ID)
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

	if len(seen) != len(scores) {
		t.Fatalf("paged through %d reviews, want %d", len(seen), len(scores))
	}
	unique := map[int64]bool{}
	for _, id := range seen {
		if unique[id] {
			t.Fatalf("review %d appeared on two pages", id)
		}
		unique[id] = true
	}
}
