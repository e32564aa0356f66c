package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

type s3Storage struct {
	uploader *s3manager.Uploader
	client   s3iface.S3API
	cfg      Configs
}

func NewS3Storage(cfg Configs) (Storage, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:           aws.String(cfg.Region),
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Endpoint:         aws.String(cfg.Endpoint),
		S3ForcePathStyle: aws.Bool(true),
		DisableSSL:       aws.Bool(cfg.SSLDisabled),
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 session: %w", err)
	}

	client := s3.New(sess)
	return &s3Storage{
		uploader: s3manager.NewUploaderWithClient(client),
		client:   client,
		cfg:      cfg,
	}, nil
}

func (s *s3Storage) Upload(ctx context.Context, object *UploadObject) error {
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(object.Bucket),
		Key:         aws.String(object.Key),
		Body:        bytes.NewReader(object.Data),
		ACL:         aws.String(s3.ObjectCannedACLPublicRead),
		ContentType: aws.String(object.Mime),
	})
	if err != nil {
		return fmt.Errorf("upload failed: %w, bucket %s, key %s", err, object.Bucket, object.Key)
	}
	return nil
}

func (s *s3Storage) PublicURL(bucket, key string) string {
	if s.cfg.PublicEndpoint != "" {
		return joinURL(s.cfg.PublicEndpoint, bucket, key)
	}
	return joinURL(s.cfg.Endpoint, bucket, key)
}

func (s *s3Storage) Remove(ctx context.Context, bucket string, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	objects := make([]*s3.ObjectIdentifier, 0, len(keys))
	for _, k := range keys {
		objects = append(objects, &s3.ObjectIdentifier{Key: aws.String(k)})
	}

	out, err := s.client.DeleteObjectsWithContext(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(bucket),
		Delete: &s3.Delete{Objects: objects, Quiet: aws.Bool(true)},
	})
	if err != nil {
		return fmt.Errorf("delete objects: %w, bucket %s", err, bucket)
	}

	if len(out.Errors) > 0 {
		first := out.Errors[0]
		return fmt.Errorf("delete object %s: %s (%s), %d failed",
			aws.StringValue(first.Key), aws.StringValue(first.Message),
			aws.StringValue(first.Code), len(out.Errors))
	}

	return nil
}
