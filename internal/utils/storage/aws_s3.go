package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"Go-Course-Market/internal/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type (
	AwsS3 interface {
		UploadFile(ctx context.Context, folder string, file *multipart.FileHeader) (string, error)
	}

	awsS3 struct {
		bucket string
		region string
	}
)

func NewAwsS3() AwsS3 {
	return &awsS3{
		bucket: utils.GetConfig("AWS_S3_BUCKET"),
		region: utils.GetConfig("AWS_S3_REGION"),
	}
}

func (s *awsS3) client(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(s.region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			utils.GetConfig("AWS_ACCESS_KEY"),
			utils.GetConfig("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(cfg), nil
}

func (s *awsS3) UploadFile(ctx context.Context, folder string, file *multipart.FileHeader) (string, error) {
	client, err := s.client(ctx)
	if err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), filepath.Ext(file.Filename))
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        src,
		ContentType: aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
