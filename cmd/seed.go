package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vibast-solutions/ms-go-bootcamps/app/entity"
	"github.com/vibast-solutions/ms-go-bootcamps/app/repository"
	"github.com/vibast-solutions/ms-go-bootcamps/config"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/crypto/bcrypt"
)

var seedDataDir string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load or remove sample data",
}

var seedImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import sample users, bootcamps, courses and reviews from JSON files",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, closeDB, err := connectForSeed()
		if err != nil {
			return err
		}
		defer closeDB()

		return importSeedData(cmd.Context(), db, seedDataDir)
	},
}

var seedDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove all documents from every collection",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, closeDB, err := connectForSeed()
		if err != nil {
			return err
		}
		defer closeDB()

		if err := repository.Purge(cmd.Context(), db); err != nil {
			return err
		}
		fmt.Println("all data removed")
		return nil
	},
}

func init() {
	seedCmd.PersistentFlags().StringVar(&seedDataDir, "data-dir", "_data", "directory containing the seed JSON files")
	seedCmd.AddCommand(seedImportCmd)
	seedCmd.AddCommand(seedDeleteCmd)
	rootCmd.AddCommand(seedCmd)
}

func connectForSeed() (*mongo.Database, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return repository.Connect(cfg.MongoURI, cfg.MongoDatabase)
}

type seedUser struct {
	entity.User
	Password string `json:"password"`
}

func importSeedData(ctx context.Context, db *mongo.Database, dataDir string) error {
	now := time.Now().UTC()

	var users []seedUser
	if err := readSeedFile(dataDir, "users.json", &users); err != nil {
		return err
	}
	userRepo := repository.NewUserRepository(db)
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", u.Email, err)
		}
		user := u.User
		if user.ID == "" {
			user.ID = uuid.NewString()
		}
		if user.Role == "" {
			user.Role = entity.RoleUser
		}
		user.PasswordHash = string(hash)
		user.CreatedAt = now
		user.UpdatedAt = now
		if err := userRepo.Create(ctx, &user); err != nil {
			return fmt.Errorf("insert user %s: %w", user.Email, err)
		}
	}
	fmt.Printf("imported %d users\n", len(users))

	var bootcamps []entity.Bootcamp
	if err := readSeedFile(dataDir, "bootcamps.json", &bootcamps); err != nil {
		return err
	}
	bootcampRepo := repository.NewBootcampRepository(db)
	for i := range bootcamps {
		if bootcamps[i].ID == "" {
			bootcamps[i].ID = uuid.NewString()
		}
		bootcamps[i].CreatedAt = now
		bootcamps[i].UpdatedAt = now
		if err := bootcampRepo.Create(ctx, &bootcamps[i]); err != nil {
			return fmt.Errorf("insert bootcamp %s: %w", bootcamps[i].Name, err)
		}
	}
	fmt.Printf("imported %d bootcamps\n", len(bootcamps))

	var courses []entity.Course
	if err := readSeedFile(dataDir, "courses.json", &courses); err != nil {
		return err
	}
	courseRepo := repository.NewCourseRepository(db)
	for i := range courses {
		if courses[i].ID == "" {
			courses[i].ID = uuid.NewString()
		}
		courses[i].CreatedAt = now
		courses[i].UpdatedAt = now
		if err := courseRepo.Create(ctx, &courses[i]); err != nil {
			return fmt.Errorf("insert course %s: %w", courses[i].Title, err)
		}
	}
	fmt.Printf("imported %d courses\n", len(courses))

	var reviews []entity.Review
	if err := readSeedFile(dataDir, "reviews.json", &reviews); err != nil {
		return err
	}
	reviewRepo := repository.NewReviewRepository(db)
	for i := range reviews {
		if reviews[i].ID == "" {
			reviews[i].ID = uuid.NewString()
		}
		reviews[i].CreatedAt = now
		reviews[i].UpdatedAt = now
		if err := reviewRepo.Create(ctx, &reviews[i]); err != nil {
			return fmt.Errorf("insert review %s: %w", reviews[i].Title, err)
		}
	}
	fmt.Printf("imported %d reviews\n", len(reviews))

	return nil
}

func readSeedFile(dataDir, name string, out interface{}) error {
	data, err := os.ReadFile(filepath.Join(dataDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}
