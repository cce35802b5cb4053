package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/h2non/filetype"
	gonanoid "github.com/matoous/go-nanoid/v2"
	cfg "github.com/ravichandra178/mynitrends/configs"
)

const generatedImagePrefix = "generated"

// R2Service stores generated images in a Cloudflare R2 bucket.
type R2Service struct {
	config cfg.R2
	client *s3.Client
}

func NewR2Service(ctx context.Context, r2 cfg.R2) (*R2Service, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(r2.AccessKey, r2.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r2.AccountID))
	})

	return &R2Service{config: r2, client: client}, nil
}

func (r *R2Service) UploadToR2(ctx context.Context, key string, file []byte, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(r.config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(file),
		ContentType: aws.String(contentType),
	}

	_, err := r.client.PutObject(ctx, input)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}

// StoreImage uploads a generated image and returns its public URL.
func (r *R2Service) StoreImage(ctx context.Context, data []byte, contentType string) (string, error) {
	key, err := objectKey(data)
	if err != nil {
		return "", err
	}

	if err := r.UploadToR2(ctx, key, data, contentType); err != nil {
		return "", err
	}

	return publicURL(r.config.PublicURL, key), nil
}

func objectKey(data []byte) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	key := generatedImagePrefix + "/" + id
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		key += "." + kind.Extension
	}
	return key, nil
}

func publicURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}
