package storage

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/wire"
)

// ProviderSet is the Wire provider set for the storage package.
var ProviderSet = wire.NewSet(NewStorage)

// Supported provider identifiers.
const (
	ProviderS3    = "s3"
	ProviderMinio = "minio"
	ProviderLocal = "local"
)

// Storage is the object storage configuration. Provider selects the active
// implementation once at process start.
type Storage struct {
	Provider  string `mapstructure:"provider"` // s3 | minio | local
	AccessKey string `mapstructure:"accessKey"`
	SecretKey string `mapstructure:"secretKey"`
	Endpoint  string `mapstructure:"endpoint"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	UseTLS    bool   `mapstructure:"useTLS"`
	BasePath  string `mapstructure:"basePath"`
	LocalRoot string `mapstructure:"localRoot"` // filesystem root for the local provider
	BaseURL   string `mapstructure:"baseURL"`   // base/CDN prefix for public URLs
}

// NewStorage creates the provider named in the configuration.
func NewStorage(s *Storage) (Provider, error) {
	switch s.Provider {
	case ProviderS3:
		return newS3(s)
	case ProviderMinio:
		return newMinio(s)
	case ProviderLocal:
		return newLocal(s)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", s.Provider)
	}
}

// FileURL joins the configured base URL with a stored relative path. The
// resulting URL always ends with the stored path itself.
func (s *Storage) FileURL(storedPath string) string {
	base := strings.TrimSuffix(s.BaseURL, "/")
	return base + "/" + strings.TrimPrefix(storedPath, "/")
}

// getFullPath combines BasePath and objectName into the in-bucket key.
func getFullPath(basePath, objectName string) string {
	objectName = strings.TrimPrefix(objectName, "/")
	if basePath == "" {
		return objectName
	}
	return path.Join(strings.Trim(basePath, "/"), objectName)
}

// storedPath prefixes the in-bucket key with the bucket name; this is the
// form persisted on entities.
func storedPath(bucket, fullPath string) string {
	return path.Join(bucket, fullPath)
}

// objectKey strips the leading bucket segment from a stored path, accepting
// plain object keys as well.
func objectKey(bucket, stored string) string {
	return strings.TrimPrefix(strings.TrimPrefix(stored, bucket+"/"), "/")
}
