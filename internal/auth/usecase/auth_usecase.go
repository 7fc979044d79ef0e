package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	authdomain "channelsync-backend/internal/auth/domain"
	authdto "channelsync-backend/internal/auth/dto"
	"channelsync-backend/internal/auth/repository"
	"channelsync-backend/pkg/slackapi"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrSelfDelete         = errors.New("cannot delete your own account")
)

// SlackDirectory is the slice of the Slack adapter the auth usecase needs
// for the bulk workspace user sync.
type SlackDirectory interface {
	ListWorkspaceUsers(ctx context.Context) ([]slackapi.WorkspaceUser, error)
}

// AuthUsecase handles login and user management
type AuthUsecase interface {
	Login(req *authdto.LoginRequest) (*authdomain.User, error)
	GetUser(id string) (*authdomain.User, error)
	ListUsers(limit, offset int) ([]*authdomain.User, int64, error)
	CreateUser(req *authdto.CreateUserRequest) (*authdomain.User, error)
	UpdateUser(id string, req *authdto.UpdateUserRequest) (*authdomain.User, error)
	DeleteUser(sessionUserID, id string) error
	SyncSlackUsers(ctx context.Context) (*authdto.SlackUserSyncResponse, error)
}

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo repository.UserRepository
	slack    SlackDirectory
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, slack SlackDirectory) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		slack:    slack,
	}
}

func (u *authUsecase) Login(req *authdto.LoginRequest) (*authdomain.User, error) {
	user, err := u.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Password == "" {
		return nil, ErrInvalidCredentials
	}
	if !repository.CheckPasswordHash(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (u *authUsecase) GetUser(id string) (*authdomain.User, error) {
	user, err := u.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (u *authUsecase) ListUsers(limit, offset int) ([]*authdomain.User, int64, error) {
	return u.userRepo.FindAll(limit, offset)
}

func (u *authUsecase) CreateUser(req *authdto.CreateUserRequest) (*authdomain.User, error) {
	existing, err := u.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := repository.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &authdomain.User{
		Email:     &req.Email,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsAdmin:   req.IsAdmin,
	}
	if req.SlackID != "" {
		user.SlackID = &req.SlackID
	}

	if err := u.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) UpdateUser(id string, req *authdto.UpdateUserRequest) (*authdomain.User, error) {
	user, err := u.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.Email != nil && (user.Email == nil || *req.Email != *user.Email) {
		existing, err := u.userRepo.FindByEmail(*req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != user.ID {
			return nil, ErrEmailTaken
		}
		user.Email = req.Email
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := repository.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.SlackID != nil {
		if *req.SlackID == "" {
			user.SlackID = nil
		} else {
			user.SlackID = req.SlackID
		}
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}

	if err := u.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) DeleteUser(sessionUserID, id string) error {
	if sessionUserID == id {
		return ErrSelfDelete
	}

	user, err := u.userRepo.FindByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return u.userRepo.Delete(id)
}

// SyncSlackUsers pulls the workspace member list and upserts users by Slack ID.
// Bots and deactivated members are skipped by the adapter.
func (u *authUsecase) SyncSlackUsers(ctx context.Context) (*authdto.SlackUserSyncResponse, error) {
	if u.slack == nil {
		return nil, fmt.Errorf("slack is not configured")
	}

	members, err := u.slack.ListWorkspaceUsers(ctx)
	if err != nil {
		return nil, err
	}

	resp := &authdto.SlackUserSyncResponse{}
	for _, m := range members {
		existing, err := u.userRepo.FindBySlackID(m.ID)
		if err != nil {
			return nil, err
		}

		if existing == nil {
			slackID := m.ID
			user := &authdomain.User{
				SlackID:   &slackID,
				FirstName: m.FirstName,
				LastName:  m.LastName,
			}
			if err := u.userRepo.Create(user); err != nil {
				log.Printf("[Auth] Failed to create user for slack member %s: %v", m.ID, err)
				continue
			}
			resp.Created++
			continue
		}

		existing.FirstName = m.FirstName
		existing.LastName = m.LastName
		if err := u.userRepo.Update(existing); err != nil {
			log.Printf("[Auth] Failed to update user for slack member %s: %v", m.ID, err)
			continue
		}
		resp.Updated++
	}

	return resp, nil
}
