package filestorage

import (
	"context"
	"io"
	"strings"
	"testing"

	"appraisal-backend/models"
	dbmodels "appraisal-backend/models/db"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	objects map[string]string
	buckets map[string]bool
	putErr  error
}

func (f *fakeObjects) PutObject(_ context.Context, bucketName, objectName string, reader io.Reader, _ int64, _ minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	body, _ := io.ReadAll(reader)
	f.objects[bucketName+"/"+objectName] = string(body)
	return minio.UploadInfo{Bucket: bucketName, Key: objectName}, nil
}

func (f *fakeObjects) BucketExists(_ context.Context, bucketName string) (bool, error) {
	return f.buckets[bucketName], nil
}

func (f *fakeObjects) MakeBucket(_ context.Context, bucketName string, _ minio.MakeBucketOptions) error {
	f.buckets[bucketName] = true
	return nil
}

type fakeFiles struct {
	rows []dbmodels.SignatureFile
}

func (f *fakeFiles) Create(rec dbmodels.SignatureFile) (string, error) {
	rec.ID = "f" + string(rune('1'+len(f.rows)))
	f.rows = append(f.rows, rec)
	return rec.ID, nil
}

func (f *fakeFiles) GetByID(id string) (*dbmodels.SignatureFile, error) {
	for _, rec := range f.rows {
		if rec.ID == id {
			return &rec, nil
		}
	}
	return nil, nil
}

func (f *fakeFiles) ListByOwner(ownerID string) ([]dbmodels.SignatureFile, error) {
	list := []dbmodels.SignatureFile{}
	for _, rec := range f.rows {
		if rec.OwnerID == ownerID {
			list = append(list, rec)
		}
	}
	return list, nil
}

func newTestStorage() (Provider, *fakeObjects, *fakeFiles) {
	objects := &fakeObjects{objects: map[string]string{}, buckets: map[string]bool{}}
	files := &fakeFiles{}
	return NewInstance(objects, files, "signatures", "http://s3.local/"), objects, files
}

func upload(owner, contentType string) SignatureUpload {
	return SignatureUpload{
		OwnerID:     owner,
		FileName:    "../sign.png",
		ContentType: contentType,
		Size:        4,
		Body:        strings.NewReader("\x89PNG"),
	}
}

func TestUploadSignature(t *testing.T) {
	t.Run(`загрузка`, func(t *testing.T) {
		storage, objects, files := newTestStorage()
		rec, err := storage.UploadSignature(context.Background(), upload("u1", "image/png"))
		require.NoError(t, err)
		require.Equal(t, "f1", rec.ID)
		require.Equal(t, "sign.png", rec.FileName)
		require.True(t, strings.HasPrefix(rec.ObjectName, "u1/"))
		require.True(t, strings.HasSuffix(rec.ObjectName, ".png"))
		require.Equal(t, "http://s3.local/signatures/"+rec.ObjectName, rec.Url)
		require.Equal(t, "\x89PNG", objects.objects["signatures/"+rec.ObjectName])
		require.Len(t, files.rows, 1)
	})
	t.Run(`неподдерживаемый тип`, func(t *testing.T) {
		storage, objects, _ := newTestStorage()
		_, err := storage.UploadSignature(context.Background(), upload("u1", "application/pdf"))
		require.True(t, models.IsValidationError(err))
		require.Empty(t, objects.objects)
	})
	t.Run(`ошибка S3`, func(t *testing.T) {
		storage, objects, files := newTestStorage()
		objects.putErr = errors.New("timeout")
		_, err := storage.UploadSignature(context.Background(), upload("u1", "image/jpeg"))
		require.Error(t, err)
		require.Empty(t, files.rows)
	})
	t.Run(`S3 не настроен`, func(t *testing.T) {
		storage := NewInstance(nil, &fakeFiles{}, "signatures", "")
		_, err := storage.UploadSignature(context.Background(), upload("u1", "image/png"))
		require.Error(t, err)
		require.Error(t, storage.MakeBucket(context.Background()))
	})
}

func TestGetSignature(t *testing.T) {
	storage, _, _ := newTestStorage()
	rec, err := storage.UploadSignature(context.Background(), upload("u1", "image/png"))
	require.NoError(t, err)

	got, err := storage.GetSignature(rec.ID, "u1")
	require.NoError(t, err)
	require.Equal(t, rec.Url, got.Url)

	_, err = storage.GetSignature(rec.ID, "u2")
	require.True(t, models.IsNotFoundError(err))

	list, err := storage.ListSignatures("u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestMakeBucket(t *testing.T) {
	storage, objects, _ := newTestStorage()
	require.NoError(t, storage.MakeBucket(context.Background()))
	require.True(t, objects.buckets["signatures"])
	require.NoError(t, storage.MakeBucket(context.Background()))
}
