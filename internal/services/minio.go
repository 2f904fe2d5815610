package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"gamestore_bff/internal/config"
)

// ImageStore es el espejo MinIO de las imágenes de producto que sube el
// admin en base64. Es opcional: sin MINIO_ENDPOINT el servicio arranca
// igual y las imágenes solo viven en el backend.
type ImageStore struct {
	client   *minio.Client
	endpoint string
	bucket   string
}

func ConnectMinio() *ImageStore {
	endpoint := config.Getenv("MINIO_ENDPOINT", "")
	if endpoint == "" {
		log.Println("⚠️ MinIO no configurado — sin espejo de imágenes")
		return nil
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.Getenv("MINIO_ACCESS_KEY", ""), config.Getenv("MINIO_SECRET_KEY", ""), ""),
		Secure: false,
	})
	if err != nil {
		log.Println("⚠️ MinIO no disponible:", err)
		return nil
	}

	log.Println("✅ Conectado a MinIO:", endpoint)
	return &ImageStore{
		client:   client,
		endpoint: endpoint,
		bucket:   config.Getenv("MINIO_BUCKET", "gamestore"),
	}
}

// UploadProductImage decodifica el base64 (la app siempre manda JPEG) y lo
// sube al bucket. Devuelve la URL pública del objeto.
func (s *ImageStore) UploadProductImage(ctx context.Context, imageBase64 string) (string, error) {
	if s == nil || s.client == nil {
		return "", fmt.Errorf("MinIO no inicializado")
	}

	data, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return "", fmt.Errorf("imagen base64 inválida: %w", err)
	}

	objectName := fmt.Sprintf("products/%s.jpg", uuid.NewString())
	_, err = s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "image/jpeg"})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("http://%s/%s/%s", s.endpoint, s.bucket, objectName), nil
}
