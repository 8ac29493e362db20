package ports

import "context"

// Credentials credenciales de una cuenta nueva.
type Credentials struct {
	Email    string
	Password string
}

// Profile datos visibles de la cuenta.
type Profile struct {
	Email string
	Name  string
}

// Account resultado del aprovisionamiento. Created es false cuando el email ya estaba
// registrado: la cuenta se reutiliza y la contraseña recibida no se aplica.
type Account struct {
	UserID  string
	Created bool
}

// AccountProvisioner colaborador externo de identidad. El núcleo no almacena credenciales;
// solo recibe el ID opaco de la cuenta.
type AccountProvisioner interface {
	// CreateAccount crea la cuenta, o devuelve la existente si el email ya está registrado.
	CreateAccount(ctx context.Context, cred Credentials, profile Profile) (Account, error)
}
