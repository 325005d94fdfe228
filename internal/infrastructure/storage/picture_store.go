package storage

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/Hariokas/PersonRegistrationSystem/internal/error/code"
	"github.com/Hariokas/PersonRegistrationSystem/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const (
	pictureWidth  = 200
	pictureHeight = 200
	jpegQuality   = 90
)

// InterfacePictureStore 定义头像文件存储接口
type InterfacePictureStore interface {
	Save(data []byte) (string, error)
	Load(path string) ([]byte, error)
	Delete(path string) error
}

// LocalPictureStore 本地磁盘头像存储：
// 解码上传内容，缩放为200x200后以JPEG落盘，文件名使用UUID
type LocalPictureStore struct {
	baseDir string
}

// NewLocalPictureStore 创建本地头像存储
func NewLocalPictureStore(baseDir string) *LocalPictureStore {
	return &LocalPictureStore{baseDir: baseDir}
}

// Save 缩放并保存头像，返回落盘路径
func (s *LocalPictureStore) Save(data []byte) (string, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", code.NewError(code.ErrPictureInvalid)
	}

	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", err
	}

	dst := image.NewRGBA(image.Rect(0, 0, pictureWidth, pictureHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	path := filepath.Join(s.baseDir, uuid.NewString()+".jpeg")
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := jpeg.Encode(file, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// Load 读取头像文件内容
func (s *LocalPictureStore) Load(path string) ([]byte, error) {
	if path == "" {
		return nil, code.NewError(code.ErrPictureNotFound)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, code.NewError(code.ErrPictureNotFound)
		}
		return nil, err
	}
	return data, nil
}

// Delete 删除头像文件，文件不存在时视为成功
func (s *LocalPictureStore) Delete(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warning("删除头像文件失败: %s: %v", path, err)
		return err
	}
	return nil
}
