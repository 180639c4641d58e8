package server

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
)

// stagingDir is the staging location for one submission. The path is derived
// only from the row id, never from user input.
func (s *Server) stagingDir(id uint) string {
	return filepath.Join(s.cfg.StagingDir, strconv.FormatUint(uint64(id), 10))
}

// writeStagedScreenshots files each uploaded screenshot under the fixed slot
// filename (position.jpg, aim.jpg, result.jpg) inside the submission's
// staging directory.
func (s *Server) writeStagedScreenshots(id uint, screenshots map[string]*multipart.FileHeader) error {
	dir := s.stagingDir(id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}
	for _, slot := range screenshotSlots {
		header, ok := screenshots[slot]
		if !ok {
			continue
		}
		if err := writeStagedFile(filepath.Join(dir, slot+".jpg"), header); err != nil {
			return fmt.Errorf("stage %s: %w", slot, err)
		}
	}
	return nil
}

func writeStagedFile(path string, header *multipart.FileHeader) error {
	src, err := header.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}

// purgeStaging removes a submission's staging directory. A missing directory
// is success, so the purge can run twice.
func (s *Server) purgeStaging(id uint) error {
	return os.RemoveAll(s.stagingDir(id))
}
