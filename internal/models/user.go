package models

import "time"

// UserModel represents an operator account. HashedPassword is nil for
// identity-provider-only accounts.
type UserModel struct {
	Base
	Email          string     `json:"email"       gorm:"size:254;uniqueIndex;not null"`
	Username       *string    `json:"username"    gorm:"size:50;uniqueIndex"`
	HashedPassword *string    `json:"-"           gorm:"type:text"`
	// No store default: with a `default:true` tag gorm would omit the column
	// for deactivated accounts on insert, storing them active. Creation paths
	// set it explicitly.
	IsActive       bool       `json:"is_active"   gorm:"not null"`
	IsSuperuser    bool       `json:"is_superuser" gorm:"not null;default:false"`
	CreatedAt      time.Time  `json:"created_at"`
	LastLogin      *time.Time `json:"last_login"`
}

func (UserModel) TableName() string { return "users" }

// RefreshTokenModel stores refresh tokens for JWT authentication, supporting
// rotation and revocation. Token holds a SHA-256 digest of the issued value;
// the raw token leaves the server exactly once, in the login response.
type RefreshTokenModel struct {
	Base
	UserID    string    `json:"-"          gorm:"type:char(36);index;not null"`
	Token     string    `json:"-"          gorm:"size:191;uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	IsRevoked bool      `json:"is_revoked" gorm:"not null;default:false"`
}

func (RefreshTokenModel) TableName() string { return "refresh_tokens" }

// OAuthIdentityModel links an external identity-provider account to a user.
type OAuthIdentityModel struct {
	Base
	UserID         string     `json:"-"                gorm:"type:char(36);index;not null"`
	Provider       string     `json:"provider"         gorm:"size:50;index:idx_oauth_provider_uid,priority:1;not null"`
	ProviderUserID string     `json:"provider_user_id" gorm:"size:191;index:idx_oauth_provider_uid,priority:2;not null"`
	AccessToken    *string    `json:"-"                gorm:"type:text"`
	RefreshToken   *string    `json:"-"                gorm:"type:text"`
	TokenExpiry    *time.Time `json:"token_expiry"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (OAuthIdentityModel) TableName() string { return "oauth_identities" }

// RoleModel names a grantable role.
type RoleModel struct {
	Base
	Name        string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Description string `json:"description"`
}

func (RoleModel) TableName() string { return "roles" }

// PermissionModel names a single action on a resource.
type PermissionModel struct {
	Base
	Name        string `json:"name"     gorm:"size:100;uniqueIndex;not null"`
	Action      string `json:"action"   gorm:"size:50;not null"`
	Resource    string `json:"resource" gorm:"size:100;not null"`
	Description string `json:"description"`
}

func (PermissionModel) TableName() string { return "permissions" }
