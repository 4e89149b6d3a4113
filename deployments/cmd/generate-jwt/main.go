package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/auth"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/config"
)

func main() {
	userID := flag.String("user", "550e8400-e29b-41d4-a716-446655440000", "User ID (UUID)")
	phone := flag.String("phone", "9876543210", "Phone number")
	role := flag.String("role", "driver", "Role (admin|driver)")
	flag.Parse()

	// Загружаем конфигурацию
	cfg := config.Load()

	// Создаем JWT сервис
	jwtService := auth.NewJWTService(cfg.JWT)

	// Генерируем токен
	token, err := jwtService.GenerateToken(*userID, *phone, *role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating JWT token: %v\n", err)
		os.Exit(1)
	}

	// Выводим токен
	fmt.Printf("\n✅ JWT Token generated successfully!\n\n")
	fmt.Printf("User ID:   %s\n", *userID)
	fmt.Printf("Phone:     %s\n", *phone)
	fmt.Printf("Role:      %s\n", *role)
	fmt.Printf("\nToken:\n%s\n", token)
	fmt.Printf("\n📋 Copy this for API requests:\n")
	fmt.Printf("Authorization: Bearer %s\n", token)
	fmt.Printf("\n💡 Example curl:\n")
	fmt.Printf("curl -X POST http://localhost:5000/api/admin/orders \\\n")
	fmt.Printf("  -H 'Authorization: Bearer %s' \\\n", token)
	fmt.Printf("  -H 'Content-Type: application/json' \\\n")
	fmt.Printf("  -d '{\n")
	fmt.Printf("    \"customer_name\": \"Ravi Kumar\",\n")
	fmt.Printf("    \"customer_phone\": \"9876543210\",\n")
	fmt.Printf("    \"items\": [{\"name\": \"Cement bag\", \"quantity\": 2, \"price\": 450}],\n")
	fmt.Printf("    \"delivery_address\": \"12 MG Road, Bengaluru\",\n")
	fmt.Printf("    \"total_amount\": 2450.50,\n")
	fmt.Printf("    \"payment_mode\": \"COD\"\n")
	fmt.Printf("  }'\n\n")
}
