package gql

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/cinegraph/cinegraph/internal/auth"
	"github.com/cinegraph/cinegraph/internal/domain"
	"github.com/cinegraph/cinegraph/internal/repository"
)

// AuthPayloadResolver carries a fresh access token and the authenticated
// user.
type AuthPayloadResolver struct {
	token string
	user  *UserResolver
}

func (a *AuthPayloadResolver) AccessToken() string { return a.token }
func (a *AuthPayloadResolver) User() *UserResolver { return a.user }

// Login authenticates by username or email. Bad credentials report the same
// auth error either way.
func (r *Resolver) Login(ctx context.Context, args struct{ Username, Password string }) (*AuthPayloadResolver, error) {
	user, err := r.repo.Users.GetByLogin(ctx, args.Username)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.AuthFailed("Incorrect login credentials")
		}
		return nil, err
	}
	if err := auth.VerifyPassword(user.HashedPassword, args.Password); err != nil {
		return nil, err
	}
	token, err := r.tokens.Issue(user.ID, user.UserType)
	if err != nil {
		return nil, err
	}
	return &AuthPayloadResolver{token: token, user: &UserResolver{r: r, user: user}}, nil
}

type signUpInput struct {
	Username    string
	Email       string
	Password    string
	Name        string
	DateOfBirth graphql.Time
	UserType    string
	AvatarURL   *string
}

// SignUp registers a new account and logs it in.
func (r *Resolver) SignUp(ctx context.Context, args struct{ Input signUpInput }) (*AuthPayloadResolver, error) {
	if err := validateSignUp(args.Input); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(args.Input.Password, r.bcryptCost)
	if err != nil {
		return nil, err
	}
	user, err := r.repo.Users.Create(ctx, repository.UserCreateParams{
		Username:       args.Input.Username,
		Email:          args.Input.Email,
		HashedPassword: hash,
		Name:           args.Input.Name,
		AvatarURL:      args.Input.AvatarURL,
		UserType:       userTypeFromEnum(args.Input.UserType),
		DateOfBirth:    args.Input.DateOfBirth.Time,
	})
	if err != nil {
		return nil, err
	}
	token, err := r.tokens.Issue(user.ID, user.UserType)
	if err != nil {
		return nil, err
	}
	return &AuthPayloadResolver{token: token, user: &UserResolver{r: r, user: user}}, nil
}

// UploadUrlResolver carries a presigned PUT URL and the object's eventual
// public URL.
type UploadUrlResolver struct {
	uploadURL string
	objectURL string
}

func (u *UploadUrlResolver) UploadURL() string { return u.uploadURL }
func (u *UploadUrlResolver) ObjectURL() string { return u.objectURL }

// CreateUploadUrl mints a presigned upload URL for the caller. The object
// key is namespaced per user.
func (r *Resolver) CreateUploadUrl(ctx context.Context, args struct{ Filename string }) (*UploadUrlResolver, error) {
	id, err := r.requireMember(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateContent("filename", args.Filename); err != nil {
		return nil, err
	}
	if r.uploads == nil {
		return nil, domain.AuthFailed("Uploads are not enabled")
	}
	ticket, err := r.uploads.CreateUploadURL(ctx, "users/"+itoa64(id.UserID), args.Filename)
	if err != nil {
		r.logger.Printf("gql: presign upload: %v", err)
		return nil, err
	}
	return &UploadUrlResolver{uploadURL: ticket.UploadURL, objectURL: ticket.ObjectURL}, nil
}
