package influenciador

import (
	"gorm.io/gorm"
)

type Repository interface {
	BuscarPorEmail(db *gorm.DB, email string) (*Influenciador, error)
	Salvar(db *gorm.DB, i *Influenciador) error
	BuscarPorID(db *gorm.DB, id uint) (*Influenciador, error)
	ListarTodos(db *gorm.DB) ([]Influenciador, error)
	Atualizar(db *gorm.DB, id uint, novosDados *Influenciador) error
	Deletar(db *gorm.DB, id uint) error
	CacheHoraPorID(db *gorm.DB, id uint) (float64, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) BuscarPorEmail(db *gorm.DB, email string) (*Influenciador, error) {
	var i Influenciador
	if err := db.Where("email = ?", email).First(&i).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *repositoryImpl) Salvar(db *gorm.DB, i *Influenciador) error {
	return db.Save(i).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Influenciador, error) {
	var i Influenciador
	if err := db.First(&i, id).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Influenciador, error) {
	var lista []Influenciador
	err := db.Order("nome ASC").Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, id uint, novosDados *Influenciador) error {
	var existente Influenciador
	if err := db.First(&existente, id).Error; err != nil {
		return err
	}

	existente.Nome = novosDados.Nome
	existente.Sobrenome = novosDados.Sobrenome
	existente.Email = novosDados.Email
	existente.Telefone = novosDados.Telefone
	existente.Foto = novosDados.Foto
	existente.CacheHora = novosDados.CacheHora
	existente.Status = novosDados.Status
	existente.LinkTwitch = novosDados.LinkTwitch
	existente.LinkYoutube = novosDados.LinkYoutube
	existente.LinkInstagram = novosDados.LinkInstagram
	existente.LinkTiktok = novosDados.LinkTiktok
	existente.LinkKick = novosDados.LinkKick

	return db.Save(&existente).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Influenciador{}, id).Error
}

// CacheHoraPorID devolve o valor-hora atual do influenciador.
// Usado pelo fechamento de ciclo para o snapshot de cache.
func (r *repositoryImpl) CacheHoraPorID(db *gorm.DB, id uint) (float64, error) {
	var cache float64
	err := db.Model(&Influenciador{}).
		Where("id = ?", id).
		Select("COALESCE(cache_hora, 0)").
		Scan(&cache).Error
	return cache, err
}
