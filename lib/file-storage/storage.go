package filestorage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	filesdbstorage "appraisal-backend/lib/file-storage/storage"
	"appraisal-backend/models"
	dbmodels "appraisal-backend/models/db"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	// UploadSignature загрузка изображения подписи, Url записи подставляется в раздел формы
	UploadSignature(ctx context.Context, file SignatureUpload) (dbmodels.SignatureFile, error)
	ListSignatures(ownerID string) ([]dbmodels.SignatureFile, error)
	// GetSignature подпись доступна только владельцу
	GetSignature(id, ownerID string) (dbmodels.SignatureFile, error)
	MakeBucket(ctx context.Context) error
}

var Instance Provider

// ObjectClient операции S3, которые использует хранилище
type ObjectClient interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
}

type SignatureUpload struct {
	OwnerID     string
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

const bucketRegion = "us-east-1"

var allowedContentTypes = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/svg+xml": ".svg",
}

type impl struct {
	s3client   ObjectClient
	fileStore  filesdbstorage.Provider
	bucketName string
	publicURL  string
}

func NewHandler(s3client ObjectClient, fileStore filesdbstorage.Provider, bucketName, publicURL string) {
	Instance = NewInstance(s3client, fileStore, bucketName, publicURL)
}

func NewInstance(s3client ObjectClient, fileStore filesdbstorage.Provider, bucketName, publicURL string) Provider {
	return impl{
		s3client:   s3client,
		fileStore:  fileStore,
		bucketName: bucketName,
		publicURL:  strings.TrimSuffix(publicURL, "/"),
	}
}

func (i impl) UploadSignature(ctx context.Context, file SignatureUpload) (dbmodels.SignatureFile, error) {
	ext, ok := allowedContentTypes[file.ContentType]
	if !ok {
		return dbmodels.SignatureFile{}, models.NewValidationError("Unsupported signature file type: %s", file.ContentType)
	}
	if i.s3client == nil {
		return dbmodels.SignatureFile{}, errors.New("хранилище S3 не настроено")
	}
	objectName := path.Join(file.OwnerID, uuid.NewString()+ext)
	_, err := i.s3client.PutObject(ctx, i.bucketName, objectName, file.Body, file.Size, minio.PutObjectOptions{ContentType: file.ContentType})
	if err != nil {
		return dbmodels.SignatureFile{}, errors.Wrap(err, "ошибка загрузки подписи в S3")
	}
	rec := dbmodels.SignatureFile{
		OwnerID:     file.OwnerID,
		FileName:    path.Base(file.FileName),
		ObjectName:  objectName,
		ContentType: file.ContentType,
		Size:        file.Size,
		Url:         fmt.Sprintf("%s/%s/%s", i.publicURL, i.bucketName, objectName),
	}
	rec.ID, err = i.fileStore.Create(rec)
	if err != nil {
		return dbmodels.SignatureFile{}, err
	}
	log.
		WithField("owner_id", file.OwnerID).
		WithField("object_name", objectName).
		Info("загружена подпись")
	return rec, nil
}

func (i impl) ListSignatures(ownerID string) ([]dbmodels.SignatureFile, error) {
	return i.fileStore.ListByOwner(ownerID)
}

func (i impl) GetSignature(id, ownerID string) (dbmodels.SignatureFile, error) {
	rec, err := i.fileStore.GetByID(id)
	if err != nil {
		return dbmodels.SignatureFile{}, err
	}
	if rec == nil || rec.OwnerID != ownerID {
		return dbmodels.SignatureFile{}, models.NewNotFoundError("Signature not found")
	}
	return *rec, nil
}

func (i impl) MakeBucket(ctx context.Context) error {
	if i.s3client == nil {
		return errors.New("хранилище S3 не настроено")
	}
	exists, err := i.s3client.BucketExists(ctx, i.bucketName)
	if err != nil {
		return errors.Wrap(err, "ошибка проверки бакета")
	}
	if exists {
		return nil
	}
	return errors.Wrap(i.s3client.MakeBucket(ctx, i.bucketName, minio.MakeBucketOptions{Region: bucketRegion}), "ошибка создания бакета")
}
