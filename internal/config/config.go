package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Policy holds the media size and count ceilings enforced by the pipeline.
// Values are externally configurable; defaults match the product policy.
type Policy struct {
	ImageOriginalMaxBytes   int64
	ImageCompressedMaxBytes int64
	VideoOriginalMaxBytes   int64
	VideoCompressedMaxBytes int64
	SessionTotalMaxBytes    int64
	MaxImagesPerPost        int
	MaxVideosPerPost        int
}

func DefaultPolicy() Policy {
	return Policy{
		ImageOriginalMaxBytes:   50 * 1024 * 1024,
		ImageCompressedMaxBytes: 5 * 1024 * 1024,
		VideoOriginalMaxBytes:   500 * 1024 * 1024,
		VideoCompressedMaxBytes: 100 * 1024 * 1024,
		SessionTotalMaxBytes:    200 * 1024 * 1024,
		MaxImagesPerPost:        5,
		MaxVideosPerPost:        1,
	}
}

type Settings struct {
	ServerPort     int
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MediaBucket    string
	// MediaPublicURLs switches the uploader from 7-day presigned URLs to
	// permanent public ones, for buckets with a public read policy.
	MediaPublicURLs bool
	SignedURLTTL    time.Duration
	RedisAddr       string
	RedisPassword   string
	JWTPublicKey    string
	TempDir         string
	SessionIdleTTL  time.Duration
	Policy          Policy
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	if !viper.IsSet("SERVER_PORT") {
		return nil, fmt.Errorf("SERVER_PORT is required")
	}
	if !viper.IsSet("MINIO_ENDPOINT") {
		return nil, fmt.Errorf("MINIO_ENDPOINT is required")
	}
	if !viper.IsSet("MINIO_ACCESS_KEY") {
		return nil, fmt.Errorf("MINIO_ACCESS_KEY is required")
	}
	if !viper.IsSet("MINIO_SECRET_KEY") {
		return nil, fmt.Errorf("MINIO_SECRET_KEY is required")
	}

	viper.SetDefault("MEDIA_BUCKET", "medias")
	viper.SetDefault("SIGNED_URL_TTL", int((7 * 24 * time.Hour).Seconds()))
	viper.SetDefault("SESSION_IDLE_TTL", int((2 * time.Hour).Seconds()))
	viper.SetDefault("TEMP_DIR", os.TempDir())

	policy := DefaultPolicy()
	if viper.IsSet("IMAGE_ORIGINAL_MAX_BYTES") {
		policy.ImageOriginalMaxBytes = viper.GetInt64("IMAGE_ORIGINAL_MAX_BYTES")
	}
	if viper.IsSet("IMAGE_COMPRESSED_MAX_BYTES") {
		policy.ImageCompressedMaxBytes = viper.GetInt64("IMAGE_COMPRESSED_MAX_BYTES")
	}
	if viper.IsSet("VIDEO_ORIGINAL_MAX_BYTES") {
		policy.VideoOriginalMaxBytes = viper.GetInt64("VIDEO_ORIGINAL_MAX_BYTES")
	}
	if viper.IsSet("VIDEO_COMPRESSED_MAX_BYTES") {
		policy.VideoCompressedMaxBytes = viper.GetInt64("VIDEO_COMPRESSED_MAX_BYTES")
	}
	if viper.IsSet("SESSION_TOTAL_MAX_BYTES") {
		policy.SessionTotalMaxBytes = viper.GetInt64("SESSION_TOTAL_MAX_BYTES")
	}
	if viper.IsSet("MAX_IMAGES_PER_POST") {
		policy.MaxImagesPerPost = viper.GetInt("MAX_IMAGES_PER_POST")
	}
	if viper.IsSet("MAX_VIDEOS_PER_POST") {
		policy.MaxVideosPerPost = viper.GetInt("MAX_VIDEOS_PER_POST")
	}

	return &Settings{
		ServerPort:      viper.GetInt("SERVER_PORT"),
		MinioEndpoint:   viper.GetString("MINIO_ENDPOINT"),
		MinioAccessKey:  viper.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey:  viper.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:     viper.GetBool("MINIO_USE_SSL"),
		MediaBucket:     viper.GetString("MEDIA_BUCKET"),
		MediaPublicURLs: viper.GetBool("MEDIA_PUBLIC_URLS"),
		SignedURLTTL:    time.Duration(viper.GetInt("SIGNED_URL_TTL")) * time.Second,
		RedisAddr:       viper.GetString("REDIS_ADDR"),
		RedisPassword:   viper.GetString("REDIS_PASSWORD"),
		JWTPublicKey:    viper.GetString("JWT_PUBLIC_KEY"),
		TempDir:         viper.GetString("TEMP_DIR"),
		SessionIdleTTL:  time.Duration(viper.GetInt("SESSION_IDLE_TTL")) * time.Second,
		Policy:          policy,
	}, nil
}
