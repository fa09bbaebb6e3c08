package service

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"familytree_go/internal/model"
)

// SharePayload 分享负载
//
// Data为zlib压缩后base64编码的家族树文档，Key用于外部传输层寻址。
// 加密和上传由外部传输层负责，不属于核心的职责。
type SharePayload struct {
	Key  string `json:"key"`  // 负载标识
	Data string `json:"data"` // 压缩编码后的文档
}

// ShareService 分享负载编解码服务
type ShareService struct {
	logger *slog.Logger
}

// NewShareService 创建分享服务实例
func NewShareService(logger *slog.Logger) *ShareService {
	return &ShareService{logger: logger}
}

// Encode 把家族树文档打包为分享负载
func (s *ShareService) Encode(doc *model.TreeData) (*SharePayload, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, NewError(ErrInternal, "failed to encode the share payload", err)
	}

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return nil, NewError(ErrInternal, "failed to compress the share payload", err)
	}
	if err := zw.Close(); err != nil {
		return nil, NewError(ErrInternal, "failed to compress the share payload", err)
	}

	payload := &SharePayload{
		Key:  uuid.NewString(),
		Data: base64.StdEncoding.EncodeToString(buf.Bytes()),
	}
	if s.logger != nil {
		s.logger.Info("share payload encoded", "key", payload.Key, "bytes", len(payload.Data))
	}
	return payload, nil
}

// Decode 解开分享负载得到家族树文档
//
// 解码顺序与Encode相反：base64 → zlib解压 → JSON。
// 任何一步失败都视为结构错误，文档的引用完整性校验由调用方负责。
func (s *ShareService) Decode(data string) (*model.TreeData, error) {
	compressed, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, NewError(ErrStructural, "the share payload is not valid base64", err)
	}

	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, NewError(ErrStructural, "the share payload is not a valid compressed stream", err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, NewError(ErrStructural, "the share payload is corrupted", err)
	}

	var doc model.TreeData
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, NewError(ErrStructural, "the share payload has an invalid structure", err)
	}
	return &doc, nil
}
