package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/purrday-app/purrday_api/dto"
	"github.com/purrday-app/purrday_api/model"
	"github.com/purrday-app/purrday_api/shared"
)

const (
	ReasonAlreadyUnlocked   = "already-unlocked"
	ReasonInsufficientFunds = "insufficient-funds"
)

// CompanionService spends jelly to grow the unlocked cat set. The set is
// append-only; adopting an owned cat and adopting without funds are both
// expected outcomes, not errors.
type CompanionService struct {
	context.DefaultService

	sqlSvc   *SqlService
	minioSvc *MinIOService
}

const COMPANION_SVC = "companion_svc"

func (svc CompanionService) Id() string {
	return COMPANION_SVC
}

func (svc *CompanionService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *CompanionService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	if minioSvc, ok := svc.Service(MINIO_SVC).(*MinIOService); ok {
		svc.minioSvc = minioSvc
	}
	return nil
}

func (svc *CompanionService) getLedger(userID string) (*model.Ledger, error) {
	ledger, err := svc.sqlSvc.Ledgers().GetLedger(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "User not found")
		}
		return nil, svc.sqlSvc.HandleError(err)
	}
	return ledger, nil
}

func unlockedSet(ledger *model.Ledger) ([]string, error) {
	var cats []string
	if err := json.Unmarshal(ledger.UnlockedCats, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// Adopt debits the cat's price and appends it to the unlocked set. The debit
// and append ride a single compare-and-set in the store; a lost race
// re-reads and re-evaluates, so a concurrent duplicate adopt cannot charge
// twice.
func (svc *CompanionService) Adopt(userID, catName string) (*dto.AdoptCatResponse, error) {
	persona, ok := CatPersona(catName)
	if !ok {
		return nil, shared.NewBadRequestError(nil, "Invalid cat name")
	}
	price := persona.Price
	if persona.Free {
		price = 0
	}

	for attempt := 0; attempt < 3; attempt++ {
		ledger, err := svc.getLedger(userID)
		if err != nil {
			return nil, err
		}

		cats, err := unlockedSet(ledger)
		if err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}

		for _, c := range cats {
			if c == catName {
				return &dto.AdoptCatResponse{
					Success:      false,
					Reason:       ReasonAlreadyUnlocked,
					Message:      fmt.Sprintf("%s is already adopted!", catName),
					JellyCount:   ledger.JellyCount,
					UnlockedCats: cats,
				}, nil
			}
		}

		if ledger.JellyCount < price {
			return &dto.AdoptCatResponse{
				Success:      false,
				Reason:       ReasonInsufficientFunds,
				Message:      fmt.Sprintf("Not enough jelly! You need %d.", price),
				JellyCount:   ledger.JellyCount,
				Required:     price,
				UnlockedCats: cats,
			}, nil
		}

		newCats, err := json.Marshal(append(cats, catName))
		if err != nil {
			return nil, err
		}

		applied, err := svc.sqlSvc.Ledgers().AdoptCat(userID, price, ledger.UnlockedCats, newCats)
		if err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
		if !applied {
			// Balance or set changed underneath us; re-read and decide again.
			continue
		}
		catsAdoptedTotal.Inc()

		updated, err := svc.getLedger(userID)
		if err != nil {
			return nil, err
		}
		updatedCats, err := unlockedSet(updated)
		if err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}

		return &dto.AdoptCatResponse{
			Success:      true,
			Message:      fmt.Sprintf("You adopted %s! 🐱", catName),
			JellyCount:   updated.JellyCount,
			UnlockedCats: updatedCats,
		}, nil
	}

	return nil, shared.NewAppError(409, nil, "Ledger is busy, please retry")
}

func (svc *CompanionService) UnlockedCats(userID string) (*dto.UnlockedCatsResponse, error) {
	ledger, err := svc.getLedger(userID)
	if err != nil {
		return nil, err
	}

	cats, err := unlockedSet(ledger)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	return &dto.UnlockedCatsResponse{UnlockedCats: cats}, nil
}

func (svc *CompanionService) SelectedCat(userID string) (*dto.SelectedCatResponse, error) {
	ledger, err := svc.getLedger(userID)
	if err != nil {
		return nil, err
	}

	selected := ledger.SelectedCat
	if selected == "" {
		selected = DefaultCat
	}
	return &dto.SelectedCatResponse{SelectedCat: selected}, nil
}

// SelectCat enforces membership: only an unlocked cat can be selected.
func (svc *CompanionService) SelectCat(userID, catName string) (*dto.SelectedCatResponse, error) {
	if _, ok := CatPersona(catName); !ok {
		return nil, shared.NewBadRequestError(nil, "Invalid cat selection")
	}

	ledger, err := svc.getLedger(userID)
	if err != nil {
		return nil, err
	}

	cats, err := unlockedSet(ledger)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	owned := false
	for _, c := range cats {
		if c == catName {
			owned = true
			break
		}
	}
	if !owned {
		return nil, shared.NewBadRequestError(nil, "Cat is not adopted yet")
	}

	if err := svc.sqlSvc.Ledgers().SetSelectedCat(userID, catName); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	return &dto.SelectedCatResponse{SelectedCat: catName}, nil
}

// Catalog lists every cat with its price and, when object storage is
// configured, a presigned artwork URL.
func (svc *CompanionService) Catalog() (*dto.CatCatalogResponse, error) {
	resp := &dto.CatCatalogResponse{Cats: make([]dto.CatInfo, 0, len(CatNames()))}
	for _, name := range CatNames() {
		persona, _ := CatPersona(name)
		info := dto.CatInfo{
			Name:  persona.Name,
			Price: persona.Price,
			Free:  persona.Free,
		}
		if svc.minioSvc != nil {
			url, err := svc.minioSvc.GetFileURL(fmt.Sprintf("cats/%s.png", name), time.Hour)
			if err != nil {
				log.WithError(err).WithField("cat", name).Debug("No artwork URL for cat")
			} else {
				info.ImageURL = url
			}
		}
		resp.Cats = append(resp.Cats, info)
	}
	return resp, nil
}
