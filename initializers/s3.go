package initializers

import (
	"context"

	"appraisal-backend/config"
	"appraisal-backend/db"
	filestorage "appraisal-backend/lib/file-storage"
	filesdbstorage "appraisal-backend/lib/file-storage/storage"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
)

func InitS3(ctx context.Context) {
	conf := config.Conf.S3
	publicURL := conf.PublicURL
	if publicURL == "" {
		scheme := "http://"
		if *conf.UseSSL {
			scheme = "https://"
		}
		publicURL = scheme + conf.Endpoint
	}
	fileStore := filesdbstorage.NewInstance(db.DB)

	minioClient, err := minio.New(conf.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conf.AccessKeyID, conf.SecretAccessKey, ""),
		Secure: *conf.UseSSL,
	})
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		filestorage.NewHandler(nil, fileStore, conf.BucketName, publicURL)
		return
	}
	filestorage.NewHandler(minioClient, fileStore, conf.BucketName, publicURL)

	// Проверка соединения
	if err = filestorage.Instance.MakeBucket(ctx); err != nil {
		log.WithError(err).Error("S3 соединение не удалось - бакет для подписей не создан")
		return
	}
	log.Info("S3 клиент успешно инициализирован")
}
