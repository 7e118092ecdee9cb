package service

import (
	"Social/config"
	"Social/dao"
	"Social/models"
	"Social/pkg/log"
	"Social/pkg/oss"
	"Social/pkg/snowflake"
	"Social/types"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
)

const maxPictureSize int64 = 5 << 20 // 5MB

var _ IPictureService = (*PictureService)(nil)

type IPictureService interface {
	// UploadPicture 上传头像到对象存储并更新用户头像地址, 仅本人
	UploadPicture(ctx context.Context, actor *models.User, userID int64, header *multipart.FileHeader) (*types.UploadImageResp, error)
}

type PictureService struct {
	UserDAO   *dao.Users
	Uploader  oss.Uploader
	OssConfig *config.OssConfig
}

func (s *PictureService) UploadPicture(ctx context.Context, actor *models.User, userID int64, header *multipart.FileHeader) (*types.UploadImageResp, error) {
	user, err := s.UserDAO.FindById(ctx, userID)
	if err != nil {
		return nil, lookupErr(err, "user", userID)
	}
	if err := AuthorizeOwner(actor, user, "upload profile picture of user", userID); err != nil {
		return nil, err
	}

	if header == nil {
		return nil, fmt.Errorf("%w: missing image", ErrInvalidImage)
	}
	// header.Size 不可信，但可做第一道拦截
	if header.Size <= 0 || header.Size > maxPictureSize {
		return nil, fmt.Errorf("%w: size must be between 1 byte and 5MB", ErrInvalidImage)
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	contentType, cfg, ext, err := inspectImage(f)
	if err != nil {
		return nil, err
	}

	imageID := snowflake.GenID()
	key := oss.AvatarKey(s.OssConfig.KeySalt, userID, imageID, ext, time.Now())
	url, err := s.Uploader.Put(ctx, key, contentType, io.LimitReader(f, maxPictureSize+1))
	if err != nil {
		log.L.Error("upload profile picture failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}

	now := time.Now()
	if err := s.UserDAO.Update(ctx, userID, map[string]any{
		"profile_picture": url,
		"updated_at":      now,
	}); err != nil {
		return nil, lookupErr(err, "user", userID)
	}
	user.ProfilePicture = url
	user.UpdatedAt = &now

	return &types.UploadImageResp{
		ImageID: imageID,
		Url:     url,
		Width:   cfg.Width,
		Height:  cfg.Height,
		User:    ToUserDto(user),
	}, nil
}

// inspectImage 校验 MIME 和图片头, 读完后把流复位到开头
func inspectImage(f io.ReadSeeker) (string, image.Config, string, error) {
	head := make([]byte, 512)
	n, _ := f.Read(head)
	contentType := http.DetectContentType(head[:n])
	allowedMime := map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
	}
	if !allowedMime[contentType] {
		return "", image.Config{}, "", fmt.Errorf("%w: unsupported image type %s", ErrInvalidImage, contentType)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", image.Config{}, "", err
	}

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return "", image.Config{}, "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", image.Config{}, "", err
	}

	ext := "." + strings.ToLower(format)
	if format == "jpeg" {
		ext = ".jpg"
	}
	return contentType, cfg, ext, nil
}
