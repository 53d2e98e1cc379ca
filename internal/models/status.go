package models

// Status representa o estado de um registro no sistema.
// Os valores numéricos são os mesmos usados pelo banco legado:
// 1 = ativo, 0 = inativo, 2 = removido (soft delete).
type Status int

const (
	StatusInativo  Status = 0
	StatusAtivo    Status = 1
	StatusRemovido Status = 2
)

// Label retorna o nome legível do status.
func (s Status) Label() string {
	switch s {
	case StatusAtivo:
		return "Ativo"
	case StatusInativo:
		return "Inativo"
	case StatusRemovido:
		return "Removido"
	}
	return "Desconhecido"
}
