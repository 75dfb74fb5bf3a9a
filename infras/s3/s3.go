package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"path/filepath"
	"roomly/config"
	"roomly/infras/otel"
	"roomly/shared/constant"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrFileName = "file_name"
	otelAttrBucket   = "bucket"

	DirectoryRooms     = "rooms"
	DirectoryLocations = "locations"
	DirectoryAvatars   = "avatars"
)

var ErrEmptyFile = errors.New("empty file")

type S3 interface {
	UploadFile(ctx context.Context, directory string, fileHeader *multipart.FileHeader) (url string, err error)
	UploadFileBytes(ctx context.Context, directory, contentType string, fileData []byte) (url string, err error)
	DeleteFileByURL(ctx context.Context, url string) error
}

type objectClient interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type s3Impl struct {
	client objectClient
	config *config.Config
	otel   otel.Otel
}

// UploadFile stores a multipart upload under a generated name and returns its public URL.
func (svc *s3Impl) UploadFile(ctx context.Context, directory string, fileHeader *multipart.FileHeader) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".UploadFile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	file, err := fileHeader.Open()
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	buf := bytes.NewBuffer(nil)

	if _, err = buf.ReadFrom(file); err != nil {
		return constant.Empty, fmt.Errorf("failed to read file: %w", err)
	}

	fileName := uuid.NewString() + strings.ToLower(filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get(constant.RequestHeaderContentType)

	return svc.upload(ctx, directory, fileName, contentType, buf.Bytes())
}

func (svc *s3Impl) UploadFileBytes(ctx context.Context, directory, contentType string, fileData []byte) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".UploadFileBytes")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	fileName := uuid.NewString() + extensionFromContentType(contentType)

	return svc.upload(ctx, directory, fileName, contentType, fileData)
}

// DeleteFileByURL ignores URLs that do not point into the configured bucket.
func (svc *s3Impl) DeleteFileByURL(ctx context.Context, url string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".DeleteFileByURL")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	objectKey := svc.objectKeyFromURL(url)
	if objectKey == constant.Empty {
		return nil
	}

	bucket := svc.config.External.S3.BucketName

	scope.SetAttributes(map[string]any{
		otelAttrFileName: objectKey,
		otelAttrBucket:   bucket,
	})

	_, err = svc.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to delete file from S3")

		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

func (svc *s3Impl) objectKeyFromURL(url string) string {
	publicDomain := strings.TrimSuffix(svc.config.External.S3.PublicDomain, "/")
	if publicDomain != constant.Empty && strings.HasPrefix(url, publicDomain+"/") {
		return strings.TrimPrefix(url, publicDomain+"/")
	}

	bucketURL := fmt.Sprintf("%s/%s/", strings.TrimSuffix(svc.config.External.S3.APIEndpoint, "/"), svc.config.External.S3.BucketName)
	if strings.HasPrefix(url, bucketURL) {
		return strings.TrimPrefix(url, bucketURL)
	}

	return constant.Empty
}

func (svc *s3Impl) upload(ctx context.Context, directory, fileName, contentType string, data []byte) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".upload")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if len(data) == 0 {
		return constant.Empty, ErrEmptyFile
	}

	bucket := svc.config.External.S3.BucketName
	objectKey := path.Join(directory, fileName)

	scope.SetAttributes(map[string]any{
		otelAttrFileName: objectKey,
		otelAttrBucket:   bucket,
	})

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to upload file to S3")

		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return fmt.Sprintf("%s/%s", strings.TrimSuffix(svc.config.External.S3.PublicDomain, "/"), objectKey), nil
}

func extensionFromContentType(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return constant.Empty
	}
}

func New(config *config.Config, otel otel.Otel) S3 {
	staticProvider := credentials.NewStaticCredentialsProvider(
		config.External.S3.AccessKeyID,
		config.External.S3.SecretAccessKey,
		"",
	)

	cfg, err := awsConfig.LoadDefaultConfig(
		context.TODO(),
		awsConfig.WithCredentialsProvider(staticProvider),
	)
	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(config.External.S3.APIEndpoint)
		o.UsePathStyle = true
		o.Region = "auto"
	})

	return &s3Impl{
		client: s3Client,
		config: config,
		otel:   otel,
	}
}
