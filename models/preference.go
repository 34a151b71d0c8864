package models

type UserPreferences struct {
	DarkMode        bool `json:"dark_mode" mapstructure:"dark_mode"`
	LocationSharing bool `json:"location_sharing" mapstructure:"location_sharing"`
	AutoSOS         bool `json:"auto_sos" mapstructure:"auto_sos"`
}

type UserProfile struct {
	Name        string          `json:"name" mapstructure:"name"`
	Email       string          `json:"email" mapstructure:"email"`
	Phone       string          `json:"phone" mapstructure:"phone"`
	Avatar      string          `json:"avatar,omitempty" mapstructure:"avatar"`
	Preferences UserPreferences `json:"preferences" mapstructure:"preferences"`
}

type TrustedContact struct {
	ID     string `json:"id" mapstructure:"id"`
	Name   string `json:"name" mapstructure:"name"`
	Phone  string `json:"phone" mapstructure:"phone"`
	Email  string `json:"email,omitempty" mapstructure:"email"`
	Avatar string `json:"avatar,omitempty" mapstructure:"avatar"`
}
