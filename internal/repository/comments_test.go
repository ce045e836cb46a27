package repository

import (
	"testing"

	"github.com/cinegraph/cinegraph/internal/domain"
)

func TestCommentsRepository_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()

	movie := mustCreateMovie(t, env, "Discussed")
	author := mustCreateUser(t, env, "author", domain.UserTypeRegular)
	commenter := mustCreateUser(t, env, "commenter", domain.UserTypeRegular)

	review := mustCreateReview(t, env, movie, author, 7)

	comment, err := env.repository.Comments.Create(env.ctx, review.ID, commenter.ID, "Agreed!")
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if comment.Content != "Agreed!" || comment.IsRemoved {
		t.Fatalf("unexpected comment: %+v", comment)
	}

	got, err := env.repository.Reviews.GetByID(env.ctx, review.ID)
	if err != nil {
		t.Fatalf("get review: %v", err)
	}
	if got.CommentCount != 1 {
		t.Fatalf("comment count = %d, want 1", got.CommentCount)
	}

	edited, err := env.repository.Comments.Edit(env.ctx, comment.ID, commenter.ID, "Strongly agreed!")
	if err != nil {
		t.Fatalf("edit comment: %v", err)
	}
	if edited.Content != "Strongly agreed!" || edited.LastUpdateTime == nil {
		t.Fatalf("unexpected edited comment: %+v", edited)
	}

	removed, err := env.repository.Comments.Delete(env.ctx, comment.ID, commenter.ID)
	if err != nil {
		t.Fatalf("delete comment: %v", err)
	}
	if !removed.IsRemoved || removed.Content != "" {
		t.Fatalf("soft delete should blank content: %+v", removed)
	}

	got, err = env.repository.Reviews.GetByID(env.ctx, review.ID)
	if err != nil {
		t.Fatalf("get review: %v", err)
	}
	if got.CommentCount != 0 {
		t.Fatalf("comment count after delete = %d, want 0", got.CommentCount)
	}

	// A removed comment cannot be edited back to life.
	if _, err := env.repository.Comments.Edit(env.ctx, comment.ID, commenter.ID, "zombie"); !domain.IsNotFound(err) {
		t.Fatalf("edit removed comment = %v, want NotFound", err)
	}
}

func TestCommentsRepository_OwnershipAndMissingReview(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()

	movie := mustCreateMovie(t, env, "Guarded")
	author := mustCreateUser(t, env, "author", domain.UserTypeRegular)
	other := mustCreateUser(t, env, "other", domain.UserTypeRegular)

	review := mustCreateReview(t, env, movie, author, 7)
	comment, err := env.repository.Comments.Create(env.ctx, review.ID, author.ID, "first")
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}

	if _, err := env.repository.Comments.Edit(env.ctx, comment.ID, other.ID, "mine now"); !domain.IsNotFound(err) {
		t.Fatalf("edit by non-owner = %v, want NotFound", err)
	}
	if _, err := env.repository.Comments.Delete(env.ctx, comment.ID, other.ID); !domain.IsNotFound(err) {
		t.Fatalf("delete by non-owner = %v, want NotFound", err)
	}
	if _, err := env.repository.Comments.Create(env.ctx, 999999, author.ID, "orphan"); !domain.IsNotFound(err) {
		t.Fatalf("comment on missing review = %v, want NotFound", err)
	}
}

func TestCommentsRepository_ListKeepsRemovedPlaceholders(t *testing.T) {
	env := newTestEnv(t)
	defer env.cleanup()

	movie := mustCreateMovie(t, env, "Threaded")
	author := mustCreateUser(t, env, "author", domain.UserTypeRegular)
	review := mustCreateReview(t, env, movie, author, 7)

	var commentIDs []int64
	for _, content := range []string{"one", "two", "three"} {
		comment, err := env.repository.Comments.Create(env.ctx, review.ID, author.ID, content)
		if err != nil {
			t.Fatalf("create comment %q: %v", content, err)
		}
		commentIDs = append(commentIDs, comment.ID)
	}
	if _, err := env.repository.Comments.Delete(env.ctx, commentIDs[1], author.ID); err != nil {
		t.Fatalf("delete comment: %v", err)
	}

	page, err := env.repository.Comments.ListForReview(env.ctx, review.ID, 10, nil)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(page.Items) != 3 {
		t.Fatalf("listed %d comments, want 3", len(page.Items))
	}
	removed := 0
	for _, comment := range page.Items {
		if comment.IsRemoved {
			removed++
			if comment.Content != "" {
				t.Fatalf("removed comment kept its content: %+v", comment)
			}
		}
	}
	if removed != 1 {
		t.Fatalf("removed placeholders = %d, want 1", removed)
	}

	total, err := env.repository.Comments.CountForReview(env.ctx, review.ID)
	if err != nil || total != 3 {
		t.Fatalf("count = %d, %v; want 3", total, err)
	}

	// The denormalized counter tracks live comments only.
	got, err := env.repository.Reviews.GetByID(env.ctx, review.ID)
	if err != nil || got.CommentCount != 2 {
		t.Fatalf("review comment count = %d, %v; want 2", got.CommentCount, err)
	}
}
