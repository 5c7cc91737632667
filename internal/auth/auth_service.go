package auth

import (
	"context"
	"errors"
	"os"
	"time"

	autherrors "go-empms/internal/auth/errors"
	"go-empms/internal/employee"
	employeeerrors "go-empms/internal/employee/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = time.Minute * 15
	refreshTokenTTL = time.Hour * 24 * 7
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (TokenResponse, error)
	Login(ctx context.Context, email, password string) (TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenResponse, error)
	GetMe(ctx context.Context, employeeID string) (*AuthResponse, error)
}

type service struct {
	employeeRepo employee.Repository
	employeeSvc  employee.Service
}

func NewService(employeeRepo employee.Repository, employeeSvc employee.Service) Service {
	return &service{employeeRepo: employeeRepo, employeeSvc: employeeSvc}
}

// Register is the public sign-up path. It always creates role=employee;
// admin accounts only come from the admin create-employee endpoint.
func (s *service) Register(ctx context.Context, req RegisterRequest) (TokenResponse, error) {
	created, err := s.employeeSvc.Create(ctx, employee.CreateEmployeeRequest{
		FullName:   req.FullName,
		Email:      req.Email,
		Password:   req.Password,
		Role:       employee.RoleEmployee,
		Company:    req.Company,
		Department: req.Department,
	})
	if err != nil {
		return TokenResponse{}, err
	}

	return s.issueTokens(created.ID, created.Role, AuthResponse{
		ID:         created.ID,
		FullName:   created.FullName,
		Email:      created.Email,
		Role:       created.Role,
		Company:    created.Company,
		Department: created.Department,
	})
}

func (s *service) Login(ctx context.Context, email, password string) (TokenResponse, error) {
	emp, err := s.employeeRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenResponse{}, autherrors.ErrInvalidCredentials
		}
		return TokenResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.Password), []byte(password)); err != nil {
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}

	return s.issueTokens(emp.ID.String(), emp.Role, AuthResponse{
		ID:         emp.ID.String(),
		FullName:   emp.FullName,
		Email:      emp.Email,
		Role:       emp.Role,
		Company:    emp.Company,
		Department: emp.Department,
	})
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (TokenResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return TokenResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenResponse{}, autherrors.ErrInvalidToken
	}

	employeeIDStr, ok := claims["employee_id"].(string)
	if !ok {
		return TokenResponse{}, autherrors.ErrInvalidToken
	}

	employeeID, err := uuid.Parse(employeeIDStr)
	if err != nil {
		return TokenResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	emp, err := s.employeeRepo.FindByID(ctx, employeeID.String())
	if err != nil {
		return TokenResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	return s.issueTokens(emp.ID.String(), emp.Role, AuthResponse{
		ID:         emp.ID.String(),
		FullName:   emp.FullName,
		Email:      emp.Email,
		Role:       emp.Role,
		Company:    emp.Company,
		Department: emp.Department,
	})
}

func (s *service) GetMe(ctx context.Context, employeeID string) (*AuthResponse, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}

	emp, err := s.employeeRepo.FindByID(ctx, id.String())
	if err != nil {
		return nil, employeeerrors.ErrEmployeeNotFound
	}

	return &AuthResponse{
		ID:         emp.ID.String(),
		FullName:   emp.FullName,
		Email:      emp.Email,
		Role:       emp.Role,
		Company:    emp.Company,
		Department: emp.Department,
	}, nil
}

func (s *service) issueTokens(employeeID, role string, resp AuthResponse) (TokenResponse, error) {
	accessToken, err := generateToken(employeeID, role, accessTokenTTL)
	if err != nil {
		return TokenResponse{}, autherrors.ErrTokenGenerationFailed
	}

	refreshToken, err := generateToken(employeeID, role, refreshTokenTTL)
	if err != nil {
		return TokenResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Employee:     resp,
	}, nil
}

func generateToken(employeeID, role string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"employee_id": employeeID,
		"role":        role,
		"exp":         time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
