package orders_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/vistorias-api/internal/application/auth"
	"github.com/jhoicas/vistorias-api/internal/application/dto"
	"github.com/jhoicas/vistorias-api/internal/application/ports"
	"github.com/jhoicas/vistorias-api/internal/bootstrap"
	"github.com/jhoicas/vistorias-api/internal/domain"
	"github.com/jhoicas/vistorias-api/internal/domain/entity"
	"github.com/jhoicas/vistorias-api/internal/infrastructure/memory"
)

// recordingSheets guarda la última ficha pedida.
type recordingSheets struct {
	mu   sync.Mutex
	last ports.OrderSheet
}

func (r *recordingSheets) GenerateOrderSheet(_ context.Context, s ports.OrderSheet) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = s
	return []byte("%PDF-stub"), nil
}

type fixture struct {
	ctx       context.Context
	store     *memory.Store
	c         *bootstrap.Container
	sheets    *recordingSheets
	now       time.Time
	adminID   string
	companyID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	f := &fixture{
		ctx:    context.Background(),
		store:  memory.NewStore(),
		sheets: &recordingSheets{},
		now:    time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	f.c = bootstrap.Build(bootstrap.Backend{
		Repos:   f.store.Repos(),
		Billing: f.store.Billing(),
		Tx:      f.store.TxRunner(),
	}, bootstrap.Options{
		JWT:        auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "vistorias-api-test"},
		Node:       node,
		Sheets:     f.sheets,
		Logger:     zerolog.Nop(),
		BcryptCost: bcrypt.MinCost,
	})
	f.c.Orders.WithClock(func() time.Time { return f.now })

	f.adminID = f.account(t, "admin@eagle.com")
	company, err := f.c.Companies.CreateCompany(f.ctx, f.adminID, dto.CreateCompanyRequest{Name: "Eagle Vistorias"})
	require.NoError(t, err)
	f.companyID = company.ID
	return f
}

func (f *fixture) account(t *testing.T, email string) string {
	t.Helper()
	acc, err := f.c.Auth.CreateAccount(f.ctx,
		ports.Credentials{Email: email, Password: "segura123"},
		ports.Profile{Email: email, Name: email})
	require.NoError(t, err)
	return acc.UserID
}

func (f *fixture) client(t *testing.T, email string) string {
	t.Helper()
	cl, err := f.c.Clients.CreateClient(f.ctx, f.adminID, f.companyID, dto.CreateClientRequest{
		Name: "Cliente " + email, Email: email, Password: "segura123", Phone: "11 99999-0000",
	})
	require.NoError(t, err)
	return cl.UserID
}

func (f *fixture) staff(t *testing.T, email string, role entity.Role) string {
	t.Helper()
	id := f.account(t, email)
	_, err := f.c.Companies.UpsertMembership(f.ctx, f.adminID, f.companyID, dto.UpsertMembershipRequest{Email: email, Role: role})
	require.NoError(t, err)
	return id
}

func (f *fixture) order(t *testing.T, clientUserID string, st entity.ServiceType) *dto.OrderResponse {
	t.Helper()
	o, err := f.c.Orders.CreateServiceOrder(f.ctx, clientUserID, f.companyID, dto.CreateOrderRequest{
		ServiceType: st, Address: "Av. Paulista, 1000", Description: "teste",
	})
	require.NoError(t, err)
	return o
}

func (f *fixture) move(t *testing.T, actorID, orderID string, to entity.OrderStatus) {
	t.Helper()
	_, err := f.c.Orders.UpdateOrderStatus(f.ctx, actorID, orderID, dto.UpdateOrderStatusRequest{Status: to})
	require.NoError(t, err)
}

func TestCreateServiceOrder_NumeracionSecuencial(t *testing.T) {
	f := newFixture(t)
	cli := f.client(t, "joao@cliente.com")

	want := []string{"OS-000001", "OS-000002", "OS-000003"}
	for _, number := range want {
		o := f.order(t, cli, entity.ServiceVistoria)
		assert.Equal(t, number, o.OrderNumber)
		assert.Equal(t, entity.StatusAberta, o.Status)
		assert.Equal(t, cli, o.CreatedBy)
	}
}

func TestCreateServiceOrder_NumeracionPorEmpresa(t *testing.T) {
	f := newFixture(t)
	cli := f.client(t, "joao@cliente.com")
	f.order(t, cli, entity.ServiceVistoria)

	other, err := f.c.Companies.CreateCompany(f.ctx, f.adminID, dto.CreateCompanyRequest{Name: "Outra"})
	require.NoError(t, err)
	cl, err := f.c.Clients.CreateClient(f.ctx, f.adminID, other.ID, dto.CreateClientRequest{
		Name: "Maria", Email: "maria@cliente.com", Password: "segura123",
	})
	require.NoError(t, err)
	o, err := f.c.Orders.CreateServiceOrder(f.ctx, cl.UserID, other.ID, dto.CreateOrderRequest{
		ServiceType: entity.ServiceLaudo, Address: "Rua A, 1",
	})
	require.NoError(t, err)
	assert.Equal(t, "OS-000001", o.OrderNumber)
}

func TestCreateServiceOrder_ConcurrenteSinDuplicados(t *testing.T) {
	f := newFixture(t)
	cli := f.client(t, "joao@cliente.com")

	const n = 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers = map[string]int{}
		errs    []error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o, err := f.c.Orders.CreateServiceOrder(f.ctx, cli, f.companyID, dto.CreateOrderRequest{
				ServiceType: entity.ServiceSOSPneu, Address: "BR-116 km 20",
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			numbers[o.OrderNumber]++
		}()
	}
	wg.Wait()

	require.Empty(t, errs)
	assert.Len(t, numbers, n)
	for number, count := range numbers {
		assert.Equal(t, 1, count, number)
	}
	assert.Contains(t, numbers, "OS-000001")
	assert.Contains(t, numbers, "OS-000020")
}

func TestCreateServiceOrder_PrioridadYSLA(t *testing.T) {
	f := newFixture(t)
	cli := f.client(t, "joao@cliente.com")

	sos, err := f.c.Orders.CreateServiceOrder(f.ctx, cli, f.companyID, dto.CreateOrderRequest{
		ServiceType: entity.ServiceSOSReboque, Address: "BR-116 km 20", Priority: entity.PriorityBaixa,
		Coordinates: &entity.Coordinates{Lat: -23.5505, Lng: -46.6333},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PriorityUrgente, sos.Priority)
	assert.True(t, sos.SLADeadline.Equal(f.now.Add(2*time.Hour)))
	assert.Equal(t, "https://www.google.com/maps?q=-23.5505,-46.6333", sos.GoogleMapsLink)

	vis := f.order(t, cli, entity.ServiceVistoria)
	assert.Equal(t, entity.PriorityMedia, vis.Priority)
	assert.True(t, vis.SLADeadline.Equal(f.now.Add(24*time.Hour)))
	assert.Empty(t, vis.GoogleMapsLink)
	assert.False(t, vis.IsOverdue)
}

func TestCreateServiceOrder_Validaciones(t *testing.T) {
	f := newFixture(t)
	cli := f.client(t, "joao@cliente.com")

	cases := map[string]dto.CreateOrderRequest{
		"tipo inválido":      {ServiceType: "lavagem", Address: "Rua A"},
		"sin dirección":      {ServiceType: entity.ServiceVistoria, Address: "   "},
		"prioridad inválida": {ServiceType: entity.ServiceVistoria, Address: "Rua A", Priority: "maxima"},
		"coordenadas":        {ServiceType: entity.ServiceVistoria, Address: "Rua A", Coordinates: &entity.Coordinates{Lat: 91}},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.c.Orders.CreateServiceOrder(f.ctx, cli, f.companyID, in)
			require.Error(t, err)
			assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
		})
	}
}

func TestCreateServiceOrder_SinRegistroDeCliente(t *testing.T) {
	f := newFixture(t)
	_, err := f.c.Orders.CreateServiceOrder(f.ctx, f.adminID, f.companyID, dto.CreateOrderRequest{
		ServiceType: entity.ServiceVistoria, Address: "Rua A",
	})
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
}

func TestCreateServiceOrder_SinMembresia(t *testing.T) {
	f := newFixture(t)
	outsider := f.account(t, "fora@x.com")
	_, err := f.c.Orders.CreateServiceOrder(f.ctx, outsider, f.companyID, dto.CreateOrderRequest{
		ServiceType: entity.ServiceVistoria, Address: "Rua A",
	})
	assert.Equal(t, domain.KindAccessDenied, domain.KindOf(err))
}

func TestCreateServiceOrder_FallaDeAuditoriaRevierte(t *testing.T) {
	f := newFixture(t)
	cli := f.client(t, "joao@cliente.com")
	before := len(f.store.AuditEntries())

	f.store.FailNextAuditAppend(errors.New("disco lleno"))
	_, err := f.c.Orders.CreateServiceOrder(f.ctx, cli, f.companyID, dto.CreateOrderRequest{
		ServiceType: entity.ServiceVistoria, Address: "Rua A",
	})
	require.Error(t, err)

	list, err := f.store.Repos().Orders.ListByCompany(f.ctx, f.companyID)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Len(t, f.store.AuditEntries(), before)

	// El contador también se revirtió.
	o := f.order(t, cli, entity.ServiceVistoria)
	assert.Equal(t, "OS-000001", o.OrderNumber)
}

func TestUpdateOrderStatus_PermisosPorRol(t *testing.T) {
	f := newFixture(t)
	cli := f.client(t, "joao@cliente.com")
	atendente := f.staff(t, "atendente@eagle.com", entity.RoleAtendente)
	qualidade := f.staff(t, "qualidade@eagle.com", entity.RoleQualidade)
	parceiro := f.staff(t, "parceiro@eagle.com", entity.RoleParceiro)

	o := f.order(t, cli, entity.ServiceVistoria)

	_, err := f.c.Orders.UpdateOrderStatus(f.ctx, cli, o.ID, dto.UpdateOrderStatusRequest{Status: entity.StatusCancelada})
	assert.Equal(t, domain.KindInsufficientPermissions, domain.KindOf(err), "un client nunca cambia estados")

	_, err = f.c.Orders.UpdateOrderStatus(f.ctx, qualidade, o.ID, dto.UpdateOrderStatusRequest{Status: entity.StatusDespachada})
	assert.Equal(t, domain.KindInsufficientPermissions, domain.KindOf(err), "qualidade solo actúa en aguardando_validacao")

	_, err = f.c.Orders.UpdateOrderStatus(f.ctx, parceiro, o.ID, dto.UpdateOrderStatusRequest{Status: entity.StatusDespachada})
	assert.Equal(t, domain.KindInsufficientPermissions, domain.KindOf(err), "parceiro no actúa sobre aberta")

	f.move(t, atendente, o.ID, entity.StatusDespachada)
	f.move(t, parceiro, o.ID, entity.StatusAceita)
	f.move(t, parceiro, o.ID, entity.StatusEmExecucao)
	f.move(t, parceiro, o.ID, entity.StatusAguardandoValidacao)

	_, err = f.c.Orders.UpdateOrderStatus(f.ctx, atendente, o.ID, dto.UpdateOrderStatusRequest{Status: entity.StatusCancelada})
	assert.Equal(t, domain.KindInsufficientPermissions, domain.KindOf(err))

	f.move(t, qualidade, o.ID, entity.StatusAprovada)
	f.move(t, f.adminID, o.ID, entity.StatusFinalizada)

	detail, err := f.c.Orders.GetOrderDetails(f.ctx, f.adminID, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusFinalizada, detail.Status)
}

func TestUpdateOrderStatus_TransicionInvalida(t *testing.T) {
	f := newFixture(t)
	cli := f.client(t, "joao@cliente.com")
	o := f.order(t, cli, entity.ServiceVistoria)

	_, err := f.c.Orders.UpdateOrderStatus(f.ctx, f.adminID, o.ID, dto.UpdateOrderStatusRequest{Status: entity.StatusFinalizada})
	assert.Equal(t, domain.KindInvalidTransition, domain.KindOf(err))

	_, err = f.c.Orders.UpdateOrderStatus(f.ctx, f.adminID, o.ID, dto.UpdateOrderStatusRequest{Status: "perdida"})
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))

	f.move(t, f.adminID, o.ID, entity.StatusCancelada)
	_, err = f.c.Orders.UpdateOrderStatus(f.ctx, f.adminID, o.ID, dto.UpdateOrderStatusRequest{Status: entity.StatusAberta})
	assert.Equal(t, domain.KindInvalidTransition, domain.KindOf(err), "cancelada es terminal")

	_, err = f.c.Orders.UpdateOrderStatus(f.ctx, f.adminID, "no-existe", dto.UpdateOrderStatusRequest{Status: entity.StatusAberta})
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestUpdateOrderStatus_RegistraAuditoria(t *testing.T) {
	f := newFixture(t)
	cli := f.client(t, "joao@cliente.com")
	o := f.order(t, cli, entity.ServiceVistoria)

	_, err := f.c.Orders.UpdateOrderStatus(f.ctx, f.adminID, o.ID, dto.UpdateOrderStatusRequest{
		Status: entity.StatusDespachada, Notes: "equipe a caminho",
	})
	require.NoError(t, err)

	entries := f.store.AuditEntries()
	last := entries[len(entries)-1]
	assert.Equal(t, entity.ActionUpdateOrderStatus, last.Action)
	assert.Equal(t, entity.EntityServiceOrders, last.EntityType)
	assert.Equal(t, o.ID, last.EntityID)
	assert.Equal(t, f.adminID, last.UserID)
	assert.Contains(t, string(last.OldValues), `"aberta"`)
	assert.Contains(t, string(last.NewValues), `"despachada"`)
	assert.Contains(t, string(last.NewValues), "equipe a caminho")
}

func TestUpdateOrderStatus_FallaDeAuditoriaRevierte(t *testing.T) {
	f := newFixture(t)
	cli := f.client(t, "joao@cliente.com")
	o := f.order(t, cli, entity.ServiceVistoria)

	f.store.FailNextAuditAppend(errors.New("disco lleno"))
	_, err := f.c.Orders.UpdateOrderStatus(f.ctx, f.adminID, o.ID, dto.UpdateOrderStatusRequest{Status: entity.StatusDespachada})
	require.Error(t, err)

	got, err := f.store.Repos().Orders.GetByID(f.ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAberta, got.Status)
}

func TestAssignPartner(t *testing.T) {
	f := newFixture(t)
	cli := f.client(t, "joao@cliente.com")
	atendente := f.staff(t, "atendente@eagle.com", entity.RoleAtendente)
	parceiro := f.staff(t, "guincho@eagle.com", entity.RoleParceiro)
	o := f.order(t, cli, entity.ServiceSOSReboque)

	_, err := f.c.Orders.AssignPartner(f.ctx, f.adminID, o.ID, dto.AssignPartnerRequest{PartnerID: atendente})
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err), "atendente no es parceiro")

	_, err = f.c.Orders.AssignPartner(f.ctx, cli, o.ID, dto.AssignPartnerRequest{PartnerID: parceiro})
	assert.Equal(t, domain.KindInsufficientPermissions, domain.KindOf(err))

	out, err := f.c.Orders.AssignPartner(f.ctx, atendente, o.ID, dto.AssignPartnerRequest{PartnerID: parceiro})
	require.NoError(t, err)
	assert.Equal(t, parceiro, out.AssignedPartnerID)

	_, err = f.c.Orders.AssignPartner(f.ctx, f.adminID, o.ID, dto.AssignPartnerRequest{PartnerID: parceiro})
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	f.move(t, f.adminID, o.ID, entity.StatusCancelada)
	other := f.staff(t, "reboque@eagle.com", entity.RoleParceiro)
	_, err = f.c.Orders.AssignPartner(f.ctx, f.adminID, o.ID, dto.AssignPartnerRequest{PartnerID: other})
	assert.Equal(t, domain.KindInvalidTransition, domain.KindOf(err))
}

func TestGetOrdersByStatus_TodasLasColumnas(t *testing.T) {
	f := newFixture(t)
	cli := f.client(t, "joao@cliente.com")
	parceiro := f.staff(t, "guincho@eagle.com", entity.RoleParceiro)
	a := f.order(t, cli, entity.ServiceVistoria)
	f.order(t, cli, entity.ServiceLaudo)
	f.move(t, f.adminID, a.ID, entity.StatusDespachada)
	_, err := f.c.Orders.AssignPartner(f.ctx, f.adminID, a.ID, dto.AssignPartnerRequest{PartnerID: parceiro})
	require.NoError(t, err)

	board, err := f.c.Orders.GetOrdersByStatus(f.ctx, f.adminID, f.companyID)
	require.NoError(t, err)
	for _, s := range entity.AllStatuses {
		assert.Contains(t, board, s)
	}
	require.Len(t, board[entity.StatusDespachada], 1)
	require.Len(t, board[entity.StatusAberta], 1)
	assert.Empty(t, board[entity.StatusFinalizada])

	d := board[entity.StatusDespachada][0]
	assert.Equal(t, "Cliente joao@cliente.com", d.ClientName)
	require.NotNil(t, d.Partner)
	assert.Equal(t, "guincho@eagle.com", *d.Partner)
	assert.Nil(t, board[entity.StatusAberta][0].Partner)

	_, err = f.c.Orders.GetOrdersByStatus(f.ctx, cli, f.companyID)
	assert.Equal(t, domain.KindInsufficientPermissions, domain.KindOf(err))
}

func TestGetClientOrders_SoloLasPropias(t *testing.T) {
	f := newFixture(t)
	joao := f.client(t, "joao@cliente.com")
	maria := f.client(t, "maria@cliente.com")
	a := f.order(t, joao, entity.ServiceVistoria)
	f.order(t, joao, entity.ServiceLaudo)
	f.order(t, maria, entity.ServiceSOSPneu)
	f.move(t, f.adminID, a.ID, entity.StatusCancelada)

	all, err := f.c.Orders.GetClientOrders(f.ctx, joao, f.companyID, nil, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	st := entity.StatusCancelada
	cancelled, err := f.c.Orders.GetClientOrders(f.ctx, joao, f.companyID, &st, 0)
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, a.ID, cancelled[0].ID)

	one, err := f.c.Orders.GetClientOrders(f.ctx, joao, f.companyID, nil, 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)

	staffOrders, err := f.c.Orders.GetClientOrders(f.ctx, f.adminID, f.companyID, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, staffOrders, "sin registro de cliente la lista es vacía")

	bad := entity.OrderStatus("perdida")
	_, err = f.c.Orders.GetClientOrders(f.ctx, joao, f.companyID, &bad, 0)
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
}

func TestGetOrderDetails_ClienteAjenoDenegado(t *testing.T) {
	f := newFixture(t)
	joao := f.client(t, "joao@cliente.com")
	maria := f.client(t, "maria@cliente.com")
	o := f.order(t, joao, entity.ServiceVistoria)

	_, err := f.c.Orders.GetOrderDetails(f.ctx, maria, o.ID)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	own, err := f.c.Orders.GetOrderDetails(f.ctx, joao, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.OrderNumber, own.OrderNumber)
}

func TestGetOrderDetails_Vencida(t *testing.T) {
	f := newFixture(t)
	cli := f.client(t, "joao@cliente.com")
	o := f.order(t, cli, entity.ServiceSOSBateria)

	f.now = f.now.Add(3 * time.Hour)
	d, err := f.c.Orders.GetOrderDetails(f.ctx, f.adminID, o.ID)
	require.NoError(t, err)
	assert.True(t, d.IsOverdue)
}

func TestOrderSheetPDF_ResuelveDatos(t *testing.T) {
	f := newFixture(t)
	cli := f.client(t, "joao@cliente.com")
	parceiro := f.staff(t, "guincho@eagle.com", entity.RoleParceiro)
	o := f.order(t, cli, entity.ServiceSOSReboque)
	_, err := f.c.Orders.AssignPartner(f.ctx, f.adminID, o.ID, dto.AssignPartnerRequest{PartnerID: parceiro})
	require.NoError(t, err)

	pdf, order, err := f.c.Orders.OrderSheetPDF(f.ctx, cli, o.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-stub"), pdf)
	assert.Equal(t, "OS-000001", order.OrderNumber)
	assert.Equal(t, "Eagle Vistorias", f.sheets.last.Company.Name)
	assert.Equal(t, "Cliente joao@cliente.com", f.sheets.last.Client.Name)
	assert.Equal(t, "guincho@eagle.com", f.sheets.last.PartnerName)
}
