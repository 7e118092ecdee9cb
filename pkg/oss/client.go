package oss

import (
	"Social/config"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
	"github.com/speps/go-hashids/v2"
)

var ErrDisabled = errors.New("object storage is not configured")

// Uploader 头像等对象上传
type Uploader interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

func GetOssClient(conf *config.OssConfig) *oss.Client {
	provider := credentials.NewEnvironmentVariableCredentialsProvider()
	cfg := oss.LoadDefaultConfig().WithCredentialsProvider(provider).
		WithEndpoint(conf.Endpoint).WithRegion(conf.Region)
	return oss.NewClient(cfg)
}

type Bucket struct {
	Client    *oss.Client
	Name      string
	Endpoint  string
	PublicUrl string
}

// NewUploader 未配置 bucket 时返回 Disabled
func NewUploader(conf *config.OssConfig) Uploader {
	if !conf.Enabled() {
		return Disabled{}
	}
	return &Bucket{
		Client:    GetOssClient(conf),
		Name:      conf.Bucket,
		Endpoint:  conf.Endpoint,
		PublicUrl: conf.PublicUrl,
	}
}

// Put 上传并返回可公开访问的地址
func (b *Bucket) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := b.Client.PutObject(ctx, &oss.PutObjectRequest{
		Bucket:      oss.Ptr(b.Name),
		Key:         oss.Ptr(key),
		ContentType: oss.Ptr(contentType),
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("oss put %s: %w", key, err)
	}
	return b.URL(key), nil
}

func (b *Bucket) URL(key string) string {
	if b.PublicUrl != "" {
		return strings.TrimRight(b.PublicUrl, "/") + "/" + key
	}
	host := strings.TrimPrefix(strings.TrimPrefix(b.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", b.Name, host, key)
}

type Disabled struct{}

func (Disabled) Put(context.Context, string, string, io.Reader) (string, error) {
	return "", ErrDisabled
}

// AvatarKey 头像对象路径, 用户 id 经 hashids 混淆后不直接暴露在路径里
func AvatarKey(salt string, userID, imageID int64, ext string, now time.Time) string {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = 12
	h, _ := hashids.NewWithData(hd)
	owner, err := h.EncodeInt64([]int64{userID})
	if err != nil {
		owner = fmt.Sprintf("%d", userID)
	}
	return fmt.Sprintf("avatar/%s/%s/%d%s", owner, now.Format("2006/01/02"), imageID, ext)
}
