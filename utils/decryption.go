package utils

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/datazip-inc/tap-clockify/constants"
	"github.com/goccy/go-json"
	"github.com/spf13/viper"
)

const kmsKeyPrefix = "arn:aws:kms:"

type encryptedEnvelope struct {
	EncryptedData string `json:"encrypted_data"`
}

// encryptedPayload reports whether data is an {"encrypted_data": ...} envelope
func encryptedPayload(data []byte) (string, bool) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || len(raw) != 1 {
		return "", false
	}

	envelope := encryptedEnvelope{}
	if err := json.Unmarshal(data, &envelope); err != nil || envelope.EncryptedData == "" {
		return "", false
	}

	return envelope.EncryptedData, true
}

func getDecryptionConfig() (kmsClient *kms.Client, keyID string, localKey []byte, useKMS bool, disabled bool, err error) {
	key := viper.GetString(constants.EncryptionKey)

	if strings.TrimSpace(key) == "" {
		return nil, "", nil, false, true, nil
	}

	if strings.HasPrefix(key, kmsKeyPrefix) {
		cfg, err := config.LoadDefaultConfig(context.Background())
		if err != nil {
			return nil, "", nil, false, false, fmt.Errorf("failed to load AWS config: %w", err)
		}
		client := kms.NewFromConfig(cfg)
		return client, key, nil, true, false, nil
	}

	// Local AES-GCM Mode with SHA-256 derived key
	hash := sha256.Sum256([]byte(key))
	return nil, "", hash[:], false, false, nil
}

func Decrypt(cipherData []byte) (string, error) {
	kmsClient, _, localKey, useKMS, disabled, err := getDecryptionConfig()
	if err != nil {
		return "", fmt.Errorf("decryption failed: %w", err)
	}

	if disabled {
		return string(cipherData), nil
	}

	if useKMS {
		out, err := kmsClient.Decrypt(context.Background(), &kms.DecryptInput{
			CiphertextBlob: cipherData,
		})
		if err != nil {
			return "", fmt.Errorf("decryption failed: %w", err)
		}
		return string(out.Plaintext), nil
	}

	aead, err := newAEAD(localKey)
	if err != nil {
		return "", err
	}

	nonceSize := aead.NonceSize()
	if len(cipherData) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertext := cipherData[:nonceSize], cipherData[nonceSize:]

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("decryption failed: %w", err)
	}

	return string(plaintext), nil
}

// Encrypt is the inverse of Decrypt and is used to produce encrypted config files
func Encrypt(plainData []byte) ([]byte, error) {
	kmsClient, keyID, localKey, useKMS, disabled, err := getDecryptionConfig()
	if err != nil {
		return nil, fmt.Errorf("encryption failed: %w", err)
	}

	if disabled {
		return nil, errors.New("encryption key not set")
	}

	if useKMS {
		out, err := kmsClient.Encrypt(context.Background(), &kms.EncryptInput{
			KeyId:     &keyID,
			Plaintext: plainData,
		})
		if err != nil {
			return nil, fmt.Errorf("encryption failed: %w", err)
		}
		return out.CiphertextBlob, nil
	}

	aead, err := newAEAD(localKey)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return aead.Seal(nonce, nonce, plainData, nil), nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	return cipher.NewGCM(block)
}

// DecryptConfig decrypts base64 encoded encrypted data
func DecryptConfig(encryptedConfig string) (string, error) {
	// Use json.Unmarshal to properly handle JSON string unquoting
	var unquotedString string
	if err := json.Unmarshal([]byte(encryptedConfig), &unquotedString); err != nil {
		// If unmarshal fails, assume it's already unquoted
		unquotedString = encryptedConfig
	}

	encryptedData, err := base64.URLEncoding.DecodeString(unquotedString)
	if err != nil {
		return "", fmt.Errorf("failed to decode base64 data: %v", err)
	}

	decrypted, err := Decrypt(encryptedData)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt data: %v", err)
	}

	return decrypted, nil
}

// EncryptConfig wraps encrypted content into the envelope understood by UnmarshalFile
func EncryptConfig(plainConfig []byte) ([]byte, error) {
	encrypted, err := Encrypt(plainConfig)
	if err != nil {
		return nil, err
	}

	return json.Marshal(encryptedEnvelope{
		EncryptedData: base64.URLEncoding.EncodeToString(encrypted),
	})
}
