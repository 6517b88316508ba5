//go:generate mockgen -source=../entity_lookup.go         -destination=./mock_entity_lookup.go         -package=mocks
//go:generate mockgen -source=../order_store.go           -destination=./mock_order_store.go           -package=mocks
//go:generate mockgen -source=../order_read_repository.go -destination=./mock_order_read_repository.go -package=mocks
//go:generate mockgen -source=../order_cache.go           -destination=./mock_order_cache.go           -package=mocks
//go:generate mockgen -source=../import_notifier.go       -destination=./mock_import_notifier.go       -package=mocks
//go:generate mockgen -source=../order_read_service.go    -destination=./mock_order_read_service.go    -package=mocks

package mocks
