package services

import (
	"context"

	"github.com/unisity/unisity/internal/app/models"
	"github.com/unisity/unisity/internal/app/store"
)

func newSubscriptionService(st *store.Store) *EntityService[models.Subscription, *models.Subscription] {
	return &EntityService[models.Subscription, *models.Subscription]{
		kind: models.KindSubscription,
		col:  st.Subscriptions,
		uniqueProbe: func(s *models.Subscription) []uniqueRule {
			return []uniqueRule{{
				filter:  store.Filter{"name": s.Name},
				message: "Subscription already exists",
			}}
		},
		patch: func(s *models.Subscription) store.Patch {
			return store.Patch{
				"name":        s.Name,
				"description": s.Description,
				"price":       s.Price,
			}
		},
	}
}

func newTransactionService(st *store.Store) *EntityService[models.Transaction, *models.Transaction] {
	return &EntityService[models.Transaction, *models.Transaction]{
		kind: models.KindTransaction,
		col:  st.Transactions,
		checkRefs: func(ctx context.Context, t *models.Transaction, required bool) error {
			if err := checkRef(ctx, st.Subscriptions, models.KindSubscription, t.SubscriptionID, required); err != nil {
				return err
			}
			return checkRef(ctx, st.Organizations, models.KindOrganization, t.OrganizationID, required)
		},
		resolveOne: func(ctx context.Context, t *models.Transaction) {
			t.Subscription = Lookup(ctx, st.Subscriptions, t.SubscriptionID)
			t.Organization = lookupOrganization(ctx, st, t.OrganizationID)
		},
		resolveMany: func(ctx context.Context, transactions []*models.Transaction) {
			subs := LookupSet(ctx, st.Subscriptions, keysOf(transactions, func(t *models.Transaction) string { return t.SubscriptionID }))
			orgs := lookupOrganizationSet(ctx, st, keysOf(transactions, func(t *models.Transaction) string { return t.OrganizationID }))
			for _, t := range transactions {
				t.Subscription = subs[t.SubscriptionID]
				t.Organization = orgs[t.OrganizationID]
			}
		},
		patch: func(t *models.Transaction) store.Patch {
			return store.Patch{
				"amount":         t.Amount,
				"subscriptionId": t.SubscriptionID,
				"organizationId": t.OrganizationID,
			}
		},
	}
}
