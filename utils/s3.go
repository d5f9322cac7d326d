package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var s3Client *s3.Client

// InitS3 sets up the S3 client for artifact uploads. Uploads are optional:
// when S3_BUCKET is unset the exporter only writes local files.
func InitS3() {
	if os.Getenv("S3_BUCKET") == "" {
		log.Println("S3_BUCKET not set, artifact upload disabled")
		return
	}

	s3Region := os.Getenv("S3_REGION")
	if s3Region == "" {
		s3Region = os.Getenv("AWS_REGION") // fallback
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(s3Region))
	if err != nil {
		log.Fatalf("Unable to load AWS config for S3: %v", err)
	}

	s3Client = s3.NewFromConfig(cfg)
}

// S3Enabled reports whether artifact upload is configured.
func S3Enabled() bool { return s3Client != nil }

// UploadArtifact pushes one exported file to S3 and returns its object URL.
func UploadArtifact(ctx context.Context, path string) (string, error) {
	if s3Client == nil {
		return "", fmt.Errorf("s3 client not initialized")
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open artifact %s: %v", path, err)
	}
	defer f.Close()

	bucket := os.Getenv("S3_BUCKET")
	key := fmt.Sprintf("exports/%d/%s", time.Now().UnixNano(), filepath.Base(path))

	_, err = s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %v", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucket, key), nil
}
