package utils

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/datazip-inc/tap-clockify/constants"
	"github.com/goccy/go-json"
	"github.com/oklog/ulid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"sigs.k8s.io/yaml"
)

var (
	ulidMutex   = sync.Mutex{}
	ulidEntropy = ulid.Monotonic(rand.Reader, 0)
)

// Validator is implemented by configs that can check themselves
type Validator interface {
	Validate() error
}

func Ternary(cond bool, a, b any) any {
	if cond {
		return a
	}

	return b
}

// ArrayContains returns the index of the first element matching match
func ArrayContains[T any](set []T, match func(elem T) bool) (int, bool) {
	for idx, elem := range set {
		if match(elem) {
			return idx, true
		}
	}

	return -1, false
}

func IsValidSubcommand(available []*cobra.Command, sub string) bool {
	for _, s := range available {
		if sub == s.CalledAs() || sub == s.Name() || s.HasAlias(sub) {
			return true
		}
	}

	return false
}

// ULID returns a lexically sortable unique id
func ULID() string {
	ulidMutex.Lock()
	defer ulidMutex.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), ulidEntropy).String()
}

// UnmarshalFile reads a json or yaml file into dest; files holding an
// {"encrypted_data": ...} envelope are decrypted first. When validate is set
// and dest implements Validator the decoded value is validated.
func UnmarshalFile(file string, dest any, validate ...bool) error {
	if err := CheckIfFilesExists(file); err != nil {
		return err
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("file not found : %s", err)
	}

	if payload, encrypted := encryptedPayload(data); encrypted {
		if strings.TrimSpace(viper.GetString(constants.EncryptionKey)) == "" {
			return fmt.Errorf("file[%s] is encrypted but no encryption key was provided", file)
		}
		decrypted, err := DecryptConfig(payload)
		if err != nil {
			return fmt.Errorf("failed to decrypt file[%s]: %s", file, err)
		}
		data = []byte(decrypted)
	}

	if ext := strings.ToLower(filepath.Ext(file)); ext == ".yaml" || ext == ".yml" {
		data, err = yaml.YAMLToJSON(data)
		if err != nil {
			return fmt.Errorf("failed to convert yaml file[%s]: %s", file, err)
		}
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal file[%s]: %s", file, err)
	}

	if len(validate) > 0 && validate[0] {
		if validator, ok := dest.(Validator); ok {
			if err := validator.Validate(); err != nil {
				return fmt.Errorf("%w: %s", constants.ErrInvalidConfig, err)
			}
		}
	}

	return nil
}

func CheckIfFilesExists(files ...string) error {
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("%s does not exist: %s", file, err)
		}
	}

	return nil
}

// WriteJSONFile writes content pretty printed to path creating parent folders
func WriteJSONFile(path string, content any) error {
	data, err := json.MarshalIndent(content, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal content: %s", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create folder for %s: %s", path, err)
	}

	return os.WriteFile(path, data, 0o600)
}
