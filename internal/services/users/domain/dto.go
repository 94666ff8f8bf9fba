package domain

// CredentialsInput carries email and password for login and registration
type CredentialsInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// ChangePasswordInput requires the current password before setting a new one
type ChangePasswordInput struct {
	Current string `json:"current_password" validate:"required"`
	Next    string `json:"new_password" validate:"required,min=8,max=128"`
}

// ChangeEmailInput requires the password before changing the address
type ChangeEmailInput struct {
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// ToggleInput flips a boolean user setting; pointer so false is distinguishable from absent
type ToggleInput struct {
	Enabled *bool `json:"enabled" validate:"required"`
}
