package metaclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	metadomain "github.com/vfg2006/meta-sync-api/infrastructure/integrator/meta/domain"
)

var adAccountFields = []string{
	"name",
	"account_status",
	"amount_spent",
	"balance",
	"currency",
	"spend_cap",
	"timezone_name",
	"timezone_offset_hours_utc",
	"business_country_code",
	"disable_reason",
	"is_prepay_account",
	"tax_id_status",
}

// GetAdAccountByID busca os atributos da conta de anúncios
func (c *MetaClient) GetAdAccountByID(ctx context.Context, accountID string) (*metadomain.AdAccount, error) {
	params := url.Values{}
	params.Set("fields", strings.Join(adAccountFields, ","))

	requestURL := c.buildURL(fmt.Sprintf("act_%s", accountID), params)

	account := &metadomain.AdAccount{}
	if err := c.doGet(ctx, accountID, "account_info", requestURL, account); err != nil {
		return nil, err
	}

	return account, nil
}
