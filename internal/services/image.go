package services

import (
	"bytes"
	"image"
	_ "image/gif"  // GIFデコーダを登録
	_ "image/jpeg" // JPEGデコーダを登録
	_ "image/png"  // PNGデコーダを登録

	_ "golang.org/x/image/webp" // WebPデコーダを登録
)

// imageExtensions 形式ごとの保存用拡張子
var imageExtensions = map[string]string{
	"gif":  ".gif",
	"jpeg": ".jpg",
	"png":  ".png",
	"webp": ".webp",
}

// decodeImage データが画像として最後までデコードできるか確認し、形式名を返す
func decodeImage(data []byte) (string, error) {
	_, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	if _, ok := imageExtensions[format]; !ok {
		return "", image.ErrFormat
	}
	return format, nil
}
