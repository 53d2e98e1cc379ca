package funcionario

import "gorm.io/gorm"

type Repository interface {
	BuscarPorID(db *gorm.DB, id uint) (*Funcionario, error)
	Existe(db *gorm.DB, id uint) (bool, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Funcionario, error) {
	var f Funcionario
	if err := db.First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *repositoryImpl) Existe(db *gorm.DB, id uint) (bool, error) {
	var count int64
	err := db.Model(&Funcionario{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
