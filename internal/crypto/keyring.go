package crypto

// Keyring provides secure storage for the database encryption key
type Keyring interface {
	GetKey() (string, error)
	SetKey(password string) error
	DeleteKey() error
	IsAvailable() bool
}

const (
	ServiceName = "labourcost"
	KeyName     = "db-encryption-key"

	// EnvKey holds the database key where no system keyring is available
	EnvKey = "LABOURCOST_DB_KEY"
)

// NewKeyring returns the best available keyring implementation
func NewKeyring() Keyring {
	return newPlatformKeyring()
}
