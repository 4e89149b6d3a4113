package in

import "context"

// ValidatePackageInput — код пакета, введенный водителем вручную
type ValidatePackageInput struct {
	OrderID      string
	DriverUserID string
	PackageCode  string
}

// ValidatePackageOutput — результат проверки кода
type ValidatePackageOutput struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// ValidatePackageUseCase — сверка кода пакета с заказом перед подтверждением
type ValidatePackageUseCase interface {
	Execute(ctx context.Context, input ValidatePackageInput) (*ValidatePackageOutput, error)
}
