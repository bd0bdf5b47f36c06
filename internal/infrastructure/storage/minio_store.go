// Package storage implementa el almacén de adjuntos sobre MinIO (o cualquier
// compatible S3). Los exportes del reporte se suben como objetos y se entregan
// al cliente mediante una URL prefirmada con disposición attachment.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jhoicas/Inventario-historico-api/internal/application/report"
	"github.com/jhoicas/Inventario-historico-api/pkg/config"
)

var _ report.AttachmentStore = (*MinioStore)(nil)

// MinioStore implementa report.AttachmentStore sobre un bucket MinIO.
type MinioStore struct {
	client    *minio.Client
	bucket    string
	urlExpiry time.Duration
}

// NewMinioStore conecta al endpoint y asegura que el bucket exista.
func NewMinioStore(ctx context.Context, cfg config.StorageConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("conectar a storage: %w", err)
	}

	store := &MinioStore{
		client:    client,
		bucket:    cfg.Bucket,
		urlExpiry: time.Duration(cfg.URLExpiryMin) * time.Minute,
	}
	if err := store.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *MinioStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("verificar bucket %q: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("crear bucket %q: %w", s.bucket, err)
		}
	}
	return nil
}

// Upload sube el artefacto y devuelve una URL prefirmada de descarga directa.
func (s *MinioStore) Upload(ctx context.Context, objectName, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", fmt.Errorf("subir objeto %q: %w", objectName, err)
	}

	// response-content-disposition fuerza descarga con el nombre original.
	reqParams := make(url.Values)
	reqParams.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", objectName))
	reqParams.Set("response-content-type", contentType)

	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, s.urlExpiry, reqParams)
	if err != nil {
		return "", fmt.Errorf("prefirmar URL de %q: %w", objectName, err)
	}
	return presigned.String(), nil
}
