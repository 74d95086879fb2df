package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Transactor
	Users() UserRepository
	Catalog() CatalogRepository
	Carts() CartRepository
	Reservations() ReservationRepository
	Orders() OrderRepository
}
