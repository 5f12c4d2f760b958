package ports

import "context"

// Carrier define el puerto de salida hacia la transportadora.
// Devuelve la guía (tracking code) del envío. Es una llamada síncrona;
// el caller debe pasar un contexto con timeout.
type Carrier interface {
	PushOrder(ctx context.Context, carrierID, orderID string) (string, error)
}
