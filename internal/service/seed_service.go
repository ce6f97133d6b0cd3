package service

import (
	"context"

	"go.uber.org/zap"

	"kunstcollectie/internal/domain"
	"kunstcollectie/pkg/utils"
)

var (
	seedLocationTypes = []domain.LookupFields{
		{Name: "Kantoor", Description: "Kantoorruimte"},
		{Name: "Galerie", Description: "Kunstgalerie"},
		{Name: "Opslag", Description: "Opslagruimte"},
		{Name: "Museum", Description: "Museum"},
		{Name: "Privéwoning", Description: "Privéwoning"},
	}
	seedArtworkTypes = []domain.LookupFields{
		{Name: "Schilderij", Description: "Schilderij op doek of paneel"},
		{Name: "Sculptuur", Description: "Driedimensionaal kunstwerk"},
		{Name: "Fotografie", Description: "Fotografisch werk"},
		{Name: "Tekening", Description: "Tekening op papier"},
		{Name: "Grafiek", Description: "Grafisch werk"},
		{Name: "Installatie", Description: "Kunstinstallatie"},
		{Name: "Mixed Media", Description: "Werk met gemengde technieken"},
	}
	seedSuppliers = []domain.Supplier{
		{Name: "Galerie Amsterdam", Address: "Galeriestraat 123", PostalCode: "1012 AB", City: "Amsterdam", Country: "Nederland",
			Phone: "020-1234567", Email: "info@galerieamsterdam.nl", Website: "www.galerieamsterdam.nl"},
		{Name: "Kunsthandel Rotterdam", Address: "Kunstlaan 45", PostalCode: "3012 BC", City: "Rotterdam", Country: "Nederland",
			Phone: "010-7654321", Email: "info@kunsthandelrotterdam.nl", Website: "www.kunsthandelrotterdam.nl"},
		{Name: "Veilinghuis Utrecht", Address: "Veilingweg 78", PostalCode: "3511 DE", City: "Utrecht", Country: "Nederland",
			Phone: "030-9876543", Email: "info@veilinghuisutrecht.nl", Website: "www.veilinghuisutrecht.nl"},
	}
)

// SeedAdmin 初始管理员
type SeedAdmin struct {
	Email    string
	Password string
	Name     string
}

type SeedService struct {
	lookups    domain.LookupRepository
	suppliers  domain.SupplierRepository
	users      domain.UserRepository
	bcryptCost int
	log        *zap.Logger
}

func NewSeedService(lookups domain.LookupRepository, suppliers domain.SupplierRepository, users domain.UserRepository, bcryptCost int, l *zap.Logger) *SeedService {
	return &SeedService{lookups: lookups, suppliers: suppliers, users: users, bcryptCost: bcryptCost, log: l}
}

// Seed 幂等：已存在的记录（按名称 / email）不会改动
func (s *SeedService) Seed(ctx context.Context, admin SeedAdmin) error {
	for kind, list := range map[domain.LookupKind][]domain.LookupFields{
		domain.KindLocationType: seedLocationTypes,
		domain.KindArtworkType:  seedArtworkTypes,
	} {
		for _, in := range list {
			cur, err := s.lookups.FindByName(ctx, kind, in.Name)
			if err != nil {
				return err
			}
			if cur != nil {
				continue
			}
			if err := s.lookups.Create(ctx, kind, &domain.Lookup{Name: in.Name, Description: in.Description}); err != nil {
				return err
			}
		}
	}
	for _, sp := range seedSuppliers {
		cur, err := s.suppliers.FindByName(ctx, sp.Name)
		if err != nil {
			return err
		}
		if cur != nil {
			continue
		}
		row := sp
		if err := s.suppliers.Create(ctx, &row); err != nil {
			return err
		}
	}
	return s.ensureAdmin(ctx, admin)
}

func (s *SeedService) ensureAdmin(ctx context.Context, admin SeedAdmin) error {
	email := normEmail(admin.Email)
	if email == "" || admin.Password == "" {
		s.log.Warn("seed admin skipped: email or password not configured")
		return nil
	}
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u != nil {
		return nil
	}
	hash, err := utils.HashPassword(admin.Password, s.bcryptCost)
	if err != nil {
		return err
	}
	name := admin.Name
	if name == "" {
		name = "Admin Gebruiker"
	}
	if err := s.users.Create(ctx, &domain.User{Email: email, Name: name, PasswordHash: hash, Role: domain.RoleAdmin}); err != nil {
		return err
	}
	s.log.Info("seed admin created", zap.String("email", email))
	return nil
}
