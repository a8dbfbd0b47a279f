package main

import (
	"context"
	"fmt"

	"app/internal/domain/model"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the local catalog with sample products",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("seed requires DATABASE_URL")
		}

		gormDB, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := gormDB.AutoMigrate(&model.Product{}); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}

		repo := infraRepo.NewCatalogGormRepository(gormDB)
		if err := repo.Seed(context.Background(), sampleProducts()); err != nil {
			return err
		}

		fmt.Println("seeded")
		return nil
	},
}

// 開発用のサンプル商品
func sampleProducts() []model.Product {
	return []model.Product{
		{Name: "Espresso Machine", Description: "15 bar pump espresso maker", Category: "kitchen", Brand: "acme", Color: "black", Size: "M", Tags: "coffee,sale", Price: 20000, Stock: 5, SoldCount: 90, IsActive: true},
		{Name: "Coffee Mug", Description: "Ceramic mug 350ml", Category: "kitchen", Brand: "globex", Color: "red", Size: "S", Tags: "coffee", Price: 800, Stock: 50, SoldCount: 300, IsActive: true},
		{Name: "French Press", Description: "Glass press 1L", Category: "kitchen", Brand: "acme", Color: "silver", Size: "L", Tags: "coffee", Price: 2500, Stock: 20, SoldCount: 150, IsActive: true},
		{Name: "Running Shoes", Description: "Lightweight road shoes", Category: "shoes", Brand: "acme", Color: "red", Size: "42", Tags: "sport,sale", Price: 6000, Stock: 10, SoldCount: 120, IsActive: true},
		{Name: "Trail Shoes", Description: "Grippy trail shoes", Category: "shoes", Brand: "initech", Color: "blue", Size: "43", Tags: "sport", Price: 7500, Stock: 8, SoldCount: 60, IsActive: true},
		{Name: "Wireless Earbuds", Description: "Noise cancelling earbuds", Category: "electronics", Brand: "globex", Color: "white", Size: "S", Tags: "audio", Price: 9800, Stock: 30, SoldCount: 500, IsActive: true},
	}
}
