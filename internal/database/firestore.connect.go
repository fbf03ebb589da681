package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"authority_agent/config"
	"authority_agent/internal/logger"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// findProjectDir tìm thư mục gốc của project (thư mục chứa config/env).
// Dùng để resolve đường dẫn credentials tương đối.
func findProjectDir() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return currentDir, nil
		}

		// Đi lên thư mục cha
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", fmt.Errorf("không tìm thấy thư mục gốc của project")
		}
		currentDir = parentDir
	}
}

// resolveCredentialsPath resolve đường dẫn credentials từ thư mục gốc khi là đường dẫn tương đối
func resolveCredentialsPath(credentialsPath string) (string, error) {
	if filepath.IsAbs(credentialsPath) {
		if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
			return "", fmt.Errorf("firebase credentials file not found: %s", credentialsPath)
		}
		return credentialsPath, nil
	}

	projectDir, err := findProjectDir()
	if err != nil {
		return "", err
	}
	resolved := filepath.Join(projectDir, credentialsPath)
	if _, err := os.Stat(resolved); os.IsNotExist(err) {
		return "", fmt.Errorf("firebase credentials file not found: %s", resolved)
	}
	return resolved, nil
}

// GetFirestoreInstance khởi tạo Firebase Admin SDK và trả về Firestore client.
// Khi FIREBASE_CREDENTIALS_PATH rỗng, SDK dùng Application Default Credentials
// (GOOGLE_APPLICATION_CREDENTIALS hoặc service account của môi trường chạy).
func GetFirestoreInstance(c *config.Configuration) (*firestore.Client, error) {
	if c.FirebaseProjectID == "" {
		return nil, fmt.Errorf("firebase project ID is empty")
	}

	var opts []option.ClientOption
	if c.FirebaseCredentialsPath != "" {
		credentialsPath, err := resolveCredentialsPath(c.FirebaseCredentialsPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID: c.FirebaseProjectID,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %v", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firestore client: %v", err)
	}

	logger.GetAppLogger().Info("Successfully connected to Firestore")
	return client, nil
}

// CloseFirestoreInstance đóng kết nối Firestore client.
func CloseFirestoreInstance(client *firestore.Client) error {
	if client == nil {
		return nil
	}
	if err := client.Close(); err != nil {
		logger.GetAppLogger().WithError(err).Error("Failed to close Firestore client")
		return err
	}
	return nil
}
