package storage

import (
	"bytes"
	"context"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioStorage struct {
	Client *minio.Client
	s      *Storage
}

func newMinio(s *Storage) (*MinioStorage, error) {
	client, err := minio.New(s.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(s.AccessKey, s.SecretKey, ""),
		Secure: s.UseTLS,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorage{Client: client, s: s}, nil
}

func (m *MinioStorage) PutObject(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	fullPath := getFullPath(m.s.BasePath, objectName)
	_, err := m.Client.PutObject(ctx, m.s.Bucket, fullPath, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return storedPath(m.s.Bucket, fullPath), nil
}

func (m *MinioStorage) GetObject(ctx context.Context, stored string) ([]byte, error) {
	obj, err := m.Client.GetObject(ctx, m.s.Bucket, objectKey(m.s.Bucket, stored), minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(obj); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (m *MinioStorage) Delete(ctx context.Context, stored string) error {
	return m.Client.RemoveObject(ctx, m.s.Bucket, objectKey(m.s.Bucket, stored), minio.RemoveObjectOptions{})
}

func (m *MinioStorage) Exists(ctx context.Context, stored string) (bool, error) {
	_, err := m.Client.StatObject(ctx, m.s.Bucket, objectKey(m.s.Bucket, stored), minio.StatObjectOptions{})
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (m *MinioStorage) Copy(ctx context.Context, srcStored, dstName string) (string, error) {
	dstPath := getFullPath(m.s.BasePath, dstName)
	_, err := m.Client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: m.s.Bucket, Object: dstPath},
		minio.CopySrcOptions{Bucket: m.s.Bucket, Object: objectKey(m.s.Bucket, srcStored)})
	if err != nil {
		return "", err
	}
	return storedPath(m.s.Bucket, dstPath), nil
}

func (m *MinioStorage) PresignedURL(ctx context.Context, stored string, expiry time.Duration) (string, error) {
	u, err := m.Client.PresignedGetObject(ctx, m.s.Bucket, objectKey(m.s.Bucket, stored), expiry, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
